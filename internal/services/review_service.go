// Package services – ReviewService
//
// This file implements ReviewService, which owns the review use-cases:
// paginated listing with an optional category filter, fetching one review
// with its comment count, creating, voting and deleting.
//
// Listing goes through a query.Assembler so the sort column is checked
// against the injected whitelist before any storage access. When a listing
// comes back empty the service decides what the emptiness means: an unknown
// category filter is a 404, anything else is a successful empty page whose
// total is recounted for the pagination metadata.
//
// Observability: List is OpenTelemetry-instrumented and every outcome is
// counted in review_list_queries_total.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/apperr"
	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/repo"
)

// DefaultReviewImgURL is stored when a new review has no image.
const DefaultReviewImgURL = "https://images.pexels.com/photos/163064/play-stone-network-networked-interactive-163064.jpeg?w=700&h=700"

// Outcome labels for review_list_queries_total.
const (
	outcomeOK       = "ok"
	outcomeEmpty    = "empty"
	outcomeRejected = "rejected"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// reviewListQueries counts review listings by outcome.
var reviewListQueries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_list_queries_total",
		Help: "Review listings by outcome (ok, empty, rejected, not_found, error).",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(reviewListQueries)
}

// ReviewRepo defines the repository contract required by ReviewService.
type ReviewRepo interface {
	// ListReviews executes an assembled listing statement.
	ListReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.ReviewRow, error)
	// CountReviews executes a COUNT statement over the same filtered set.
	CountReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error)
	// GetReviewWithCount fetches one review with its comment count.
	GetReviewWithCount(ctx context.Context, db *gorm.DB, id int64) (*domain.ReviewDetail, error)
	// InsertReview stores a new review.
	InsertReview(ctx context.Context, db *gorm.DB, in repo.NewReview) (*domain.Review, error)
	// IncrementReviewVotes adds inc to the review's votes.
	IncrementReviewVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Review, error)
	// DeleteReview removes a review and, by cascade, its comments.
	DeleteReview(ctx context.Context, db *gorm.DB, id int64) error
}

// NewReviewInput is the payload for ReviewService.Create. Nil pointers mean
// the field was absent from the request.
type NewReviewInput struct {
	Owner        *string
	Title        *string
	ReviewBody   *string
	Designer     *string
	Category     *string
	ReviewImgURL *string
}

// ReviewService provides review-level operations.
type ReviewService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the review repository used by this service.
	Repo ReviewRepo
	// Assembler builds listing statements; its whitelist decides which
	// columns may be sorted on.
	Assembler query.Assembler
	// Exists resolves empty results and foreign-key failures.
	Exists *Existence
}

// NewReviewService wires a ReviewService over the reviews resource.
func NewReviewService(db *gorm.DB, r ReviewRepo, wl query.Whitelist, p query.Paginator, ex *Existence) *ReviewService {
	return &ReviewService{
		DB:   db,
		Repo: r,
		Assembler: query.Assembler{
			Resource:  query.ReviewsResource,
			Whitelist: wl,
			Paginator: p,
		},
		Exists: ex,
	}
}

// List returns one page of reviews, the number of reviews matching the
// filter before pagination, and the page window that was applied.
//
// A sort column outside the whitelist fails with InvalidSortQuery before the
// repository is touched. An empty page filtered by an unknown category fails
// with ErrCategoryDoesNotExist; any other empty page is a success.
func (s *ReviewService) List(ctx context.Context, spec query.ListSpec) ([]domain.ReviewRow, int64, query.Page, error) {
	tr := otel.Tracer("services/ReviewService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("review.category", spec.FilterValue),
			attribute.String("review.sort_by", spec.SortColumn),
		),
	)
	defer span.End()

	spec.FilterValue = normalizeKey(spec.FilterValue)

	stmt, err := s.Assembler.Assemble(spec)
	if err != nil {
		reviewListQueries.WithLabelValues(outcomeRejected).Inc()
		return nil, 0, query.Page{}, err
	}
	span.SetAttributes(
		attribute.Int("page.limit", stmt.Page.Limit),
		attribute.Int("page.offset", stmt.Page.Offset),
	)

	rows, err := s.Repo.ListReviews(ctx, s.DB, stmt)
	if err != nil {
		reviewListQueries.WithLabelValues(outcomeError).Inc()
		span.RecordError(err)
		return nil, 0, stmt.Page, err
	}
	if len(rows) > 0 {
		reviewListQueries.WithLabelValues(outcomeOK).Inc()
		return rows, rows[0].TotalReviews, stmt.Page, nil
	}

	// Empty page: tell "unknown category" apart from "nothing here".
	if spec.FilterValue != "" {
		if err := s.Exists.Category(ctx, spec.FilterValue); err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				reviewListQueries.WithLabelValues(outcomeNotFound).Inc()
			} else {
				reviewListQueries.WithLabelValues(outcomeError).Inc()
			}
			return nil, 0, stmt.Page, err
		}
	}

	var total int64
	if stmt.Page.Offset > 0 {
		if total, err = s.Repo.CountReviews(ctx, s.DB, s.Assembler.Count(spec)); err != nil {
			reviewListQueries.WithLabelValues(outcomeError).Inc()
			return nil, 0, stmt.Page, err
		}
	}
	reviewListQueries.WithLabelValues(outcomeEmpty).Inc()
	return []domain.ReviewRow{}, total, stmt.Page, nil
}

// Get returns a review with its comment count, or ErrReviewDoesNotExist.
func (s *ReviewService) Get(ctx context.Context, id int64) (*domain.ReviewDetail, error) {
	d, err := s.Repo.GetReviewWithCount(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewDoesNotExist
	}
	return d, err
}

// Create stores a new review. Owner and category are normalized; a missing
// image URL falls back to DefaultReviewImgURL. Missing required fields are
// left for the database to reject. A foreign-key failure is resolved to
// ErrUserDoesNotExist or ErrCategoryDoesNotExist when one of the two
// references is unknown.
func (s *ReviewService) Create(ctx context.Context, in NewReviewInput) (*domain.ReviewDetail, error) {
	nr := repo.NewReview{
		Owner:        normalizePtr(in.Owner),
		Title:        trimPtr(in.Title),
		ReviewBody:   in.ReviewBody,
		Category:     normalizePtr(in.Category),
		ReviewImgURL: DefaultReviewImgURL,
	}
	if in.Designer != nil {
		nr.Designer = strings.TrimSpace(*in.Designer)
	}
	if in.ReviewImgURL != nil && strings.TrimSpace(*in.ReviewImgURL) != "" {
		nr.ReviewImgURL = strings.TrimSpace(*in.ReviewImgURL)
	}

	r, err := s.Repo.InsertReview(ctx, s.DB, nr)
	if err != nil {
		if isForeignKeyViolation(err) {
			if nr.Owner != nil {
				if xerr := s.Exists.User(ctx, *nr.Owner); xerr != nil {
					return nil, xerr
				}
			}
			if nr.Category != nil {
				if xerr := s.Exists.Category(ctx, *nr.Category); xerr != nil {
					return nil, xerr
				}
			}
		}
		return nil, err
	}
	return &domain.ReviewDetail{Review: *r}, nil
}

// Vote adds inc to a review's votes. A zero increment is ErrNoVotesProvided.
func (s *ReviewService) Vote(ctx context.Context, id int64, inc int) (*domain.Review, error) {
	if inc == 0 {
		return nil, ErrNoVotesProvided
	}
	r, err := s.Repo.IncrementReviewVotes(ctx, s.DB, id, inc)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewDoesNotExist
	}
	return r, err
}

// Delete removes a review and its comments, or returns ErrReviewDoesNotExist.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	err := s.Repo.DeleteReview(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReviewDoesNotExist
	}
	return err
}

// isForeignKeyViolation reports whether the storage stage classifies err as
// a reference to a missing row.
func isForeignKeyViolation(err error) bool {
	ae, ok := apperr.StorageStage(err)
	return ok && ae.Kind == apperr.KindForeignKeyViolation
}
