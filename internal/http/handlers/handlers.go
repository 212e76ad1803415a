package handlers

import (
	"context"

	"github.com/tbourn/game-reviews-api/internal/apperr"
	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/services"
)

//
// Service contracts (context-aware)
//

// ReviewService defines the review use-cases consumed by the handlers.
//
// Implementations must be safe for concurrent use and honor ctx.
type ReviewService interface {
	// List returns a page of reviews, the pre-pagination total and the applied window.
	List(ctx context.Context, spec query.ListSpec) ([]domain.ReviewRow, int64, query.Page, error)
	// Get returns one review with its comment count.
	Get(ctx context.Context, id int64) (*domain.ReviewDetail, error)
	// Create stores a new review.
	Create(ctx context.Context, in services.NewReviewInput) (*domain.ReviewDetail, error)
	// Vote adds inc to the review's votes.
	Vote(ctx context.Context, id int64, inc int) (*domain.Review, error)
	// Delete removes a review and its comments.
	Delete(ctx context.Context, id int64) error
}

// CommentService defines the comment use-cases consumed by the handlers.
type CommentService interface {
	ListForReview(ctx context.Context, reviewID int64, spec query.ListSpec) ([]domain.CommentRow, int64, query.Page, error)
	Create(ctx context.Context, reviewID int64, author, body *string) (*domain.Comment, error)
	Vote(ctx context.Context, id int64, inc int) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryService lists and creates categories.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, slug, description *string) (*domain.Category, error)
}

// UserService reads users.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the API. It depends on service
// interfaces only, so tests can substitute fakes.
type Handlers struct {
	reviews    ReviewService
	comments   CommentService
	categories CategoryService
	users      UserService
	classifier *apperr.Classifier
}

// New binds the handlers to their services. A nil classifier falls back to
// the production posture (500 detail hidden).
func New(reviews ReviewService, comments CommentService, categories CategoryService, users UserService, classifier *apperr.Classifier) *Handlers {
	if classifier == nil {
		classifier = apperr.NewClassifier(false)
	}
	return &Handlers{
		reviews:    reviews,
		comments:   comments,
		categories: categories,
		users:      users,
		classifier: classifier,
	}
}

//
// Shared DTOs
//

// Pagination carries pagination metadata for list responses. An empty page
// past the end still reports the full total. Limit is the page size actually
// applied, after clamping to the configured maximum.
type Pagination struct {
	Page       int   `json:"page"        example:"1"`
	Limit      int   `json:"limit"       example:"10"`
	Total      int64 `json:"total"       example:"13"`
	TotalPages int   `json:"total_pages" example:"2"`
	HasNext    bool  `json:"has_next"    example:"true"`
}

func newPagination(page query.Page, total int64) Pagination {
	pages := query.TotalPages(total, page.Limit)
	return Pagination{
		Page:       page.Number,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    page.Number < pages,
	}
}

// VoteRequest is the PATCH payload for reviews and comments.
type VoteRequest struct {
	// IncVotes is added to the current tally; it may be negative but not zero.
	IncVotes *int `json:"inc_votes" example:"1"`
}

func (r VoteRequest) inc() int {
	if r.IncVotes == nil {
		return 0
	}
	return *r.IncVotes
}
