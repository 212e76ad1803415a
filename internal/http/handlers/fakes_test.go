package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/game-reviews-api/internal/apperr"
	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/services"
)

// ---------- flexible service stubs ----------

type stubReviewSvc struct {
	calls  int
	list   func(context.Context, query.ListSpec) ([]domain.ReviewRow, int64, query.Page, error)
	get    func(context.Context, int64) (*domain.ReviewDetail, error)
	create func(context.Context, services.NewReviewInput) (*domain.ReviewDetail, error)
	vote   func(context.Context, int64, int) (*domain.Review, error)
	del    func(context.Context, int64) error
}

func (s *stubReviewSvc) List(ctx context.Context, spec query.ListSpec) ([]domain.ReviewRow, int64, query.Page, error) {
	s.calls++
	if s.list != nil {
		return s.list(ctx, spec)
	}
	return []domain.ReviewRow{}, 0, pageOf(1, 10), nil
}

func (s *stubReviewSvc) Get(ctx context.Context, id int64) (*domain.ReviewDetail, error) {
	s.calls++
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.ReviewDetail{Review: domain.Review{ReviewID: id}}, nil
}

func (s *stubReviewSvc) Create(ctx context.Context, in services.NewReviewInput) (*domain.ReviewDetail, error) {
	s.calls++
	if s.create != nil {
		return s.create(ctx, in)
	}
	return &domain.ReviewDetail{Review: domain.Review{ReviewID: 14}}, nil
}

func (s *stubReviewSvc) Vote(ctx context.Context, id int64, inc int) (*domain.Review, error) {
	s.calls++
	if s.vote != nil {
		return s.vote(ctx, id, inc)
	}
	return &domain.Review{ReviewID: id, Votes: inc}, nil
}

func (s *stubReviewSvc) Delete(ctx context.Context, id int64) error {
	s.calls++
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

type stubCommentSvc struct {
	calls  int
	list   func(context.Context, int64, query.ListSpec) ([]domain.CommentRow, int64, query.Page, error)
	create func(context.Context, int64, *string, *string) (*domain.Comment, error)
	vote   func(context.Context, int64, int) (*domain.Comment, error)
	del    func(context.Context, int64) error
}

func (s *stubCommentSvc) ListForReview(ctx context.Context, reviewID int64, spec query.ListSpec) ([]domain.CommentRow, int64, query.Page, error) {
	s.calls++
	if s.list != nil {
		return s.list(ctx, reviewID, spec)
	}
	return []domain.CommentRow{}, 0, pageOf(1, 10), nil
}

func (s *stubCommentSvc) Create(ctx context.Context, reviewID int64, author, body *string) (*domain.Comment, error) {
	s.calls++
	if s.create != nil {
		return s.create(ctx, reviewID, author, body)
	}
	return &domain.Comment{CommentID: 7, ReviewID: reviewID}, nil
}

func (s *stubCommentSvc) Vote(ctx context.Context, id int64, inc int) (*domain.Comment, error) {
	s.calls++
	if s.vote != nil {
		return s.vote(ctx, id, inc)
	}
	return &domain.Comment{CommentID: id, Votes: inc}, nil
}

func (s *stubCommentSvc) Delete(ctx context.Context, id int64) error {
	s.calls++
	if s.del != nil {
		return s.del(ctx, id)
	}
	return nil
}

type stubCategorySvc struct {
	create func(context.Context, *string, *string) (*domain.Category, error)
}

func (s *stubCategorySvc) List(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{Slug: "dexterity", Description: "Games involving physical skill"}}, nil
}

func (s *stubCategorySvc) Create(ctx context.Context, slug, description *string) (*domain.Category, error) {
	if s.create != nil {
		return s.create(ctx, slug, description)
	}
	return &domain.Category{Slug: *slug}, nil
}

type stubUserSvc struct{}

func (stubUserSvc) List(ctx context.Context) ([]domain.User, error) {
	return []domain.User{{Username: "mallionaire", Name: "haz"}}, nil
}

func (stubUserSvc) Get(ctx context.Context, username string) (*domain.User, error) {
	if username != "mallionaire" {
		return nil, services.ErrUserDoesNotExist
	}
	return &domain.User{Username: username, Name: "haz"}, nil
}

// ---------- router + request helpers ----------

type testAPI struct {
	reviews  *stubReviewSvc
	comments *stubCommentSvc
	cats     *stubCategorySvc
	engine   *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &testAPI{reviews: &stubReviewSvc{}, comments: &stubCommentSvc{}, cats: &stubCategorySvc{}}
	h := New(a.reviews, a.comments, a.cats, stubUserSvc{}, apperr.NewClassifier(false))

	r := gin.New()
	api := r.Group("/api")
	api.GET("", h.GetEndpoints)
	api.GET("/categories", h.ListCategories)
	api.POST("/categories", h.CreateCategory)
	api.GET("/reviews", h.ListReviews)
	api.POST("/reviews", h.CreateReview)
	api.GET("/reviews/:review_id", h.GetReview)
	api.PATCH("/reviews/:review_id", h.PatchReview)
	api.DELETE("/reviews/:review_id", h.DeleteReview)
	api.GET("/reviews/:review_id/comments", h.ListComments)
	api.POST("/reviews/:review_id/comments", h.CreateComment)
	api.PATCH("/comments/:comment_id", h.PatchComment)
	api.DELETE("/comments/:comment_id", h.DeleteComment)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:username", h.GetUser)
	a.engine = r
	return a
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func pageOf(n, limit int) query.Page {
	return query.Page{Limit: limit, Offset: limit * (n - 1), Number: n}
}

func strp(s string) *string { return &s }

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d; want %d (body %s)", w.Code, want, w.Body.String())
	}
}
