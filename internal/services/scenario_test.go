package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/game-reviews-api/internal/apperr"
	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/repo"
)

// sqlRepo adapts the repo free functions to every service contract.
type sqlRepo struct{}

func (sqlRepo) ListReviews(ctx context.Context, db *gorm.DB, st query.Statement) ([]domain.ReviewRow, error) {
	return repo.ListReviews(ctx, db, st)
}
func (sqlRepo) CountReviews(ctx context.Context, db *gorm.DB, st query.Statement) (int64, error) {
	return repo.CountReviews(ctx, db, st)
}
func (sqlRepo) GetReviewWithCount(ctx context.Context, db *gorm.DB, id int64) (*domain.ReviewDetail, error) {
	return repo.GetReviewWithCount(ctx, db, id)
}
func (sqlRepo) InsertReview(ctx context.Context, db *gorm.DB, in repo.NewReview) (*domain.Review, error) {
	return repo.InsertReview(ctx, db, in)
}
func (sqlRepo) IncrementReviewVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Review, error) {
	return repo.IncrementReviewVotes(ctx, db, id, inc)
}
func (sqlRepo) DeleteReview(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteReview(ctx, db, id)
}
func (sqlRepo) ListComments(ctx context.Context, db *gorm.DB, st query.Statement) ([]domain.CommentRow, error) {
	return repo.ListComments(ctx, db, st)
}
func (sqlRepo) CountComments(ctx context.Context, db *gorm.DB, st query.Statement) (int64, error) {
	return repo.CountComments(ctx, db, st)
}
func (sqlRepo) InsertComment(ctx context.Context, db *gorm.DB, reviewID int64, author, body *string) (*domain.Comment, error) {
	return repo.InsertComment(ctx, db, reviewID, author, body)
}
func (sqlRepo) IncrementCommentVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Comment, error) {
	return repo.IncrementCommentVotes(ctx, db, id, inc)
}
func (sqlRepo) DeleteComment(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteComment(ctx, db, id)
}

func newScenarioDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), fmt.Sprintf("svc_%d.db", time.Now().UnixNano()))
	db, err := repo.OpenSQLite(path, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	cats := []domain.Category{
		{Slug: "euro game", Description: "Abstact games that involve little luck"},
		{Slug: "social deduction", Description: "Players attempt to uncover each other's hidden role"},
		{Slug: "dexterity", Description: "Games involving physical skill"},
		{Slug: "children's games", Description: "Games suitable for children"},
	}
	users := []domain.User{{Username: "mallionaire", Name: "haz"}, {Username: "bainesface", Name: "sarah"}}
	if err := db.Create(&cats).Error; err != nil {
		t.Fatalf("seed categories: %v", err)
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
	base := time.Date(2021, 1, 18, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		cat := "social deduction"
		if i == 0 {
			cat = "euro game"
		} else if i == 1 {
			cat = "dexterity"
		}
		r := domain.Review{
			Title: fmt.Sprintf("review %d", i+1), Category: cat, Designer: "d",
			Owner: users[i%2].Username, ReviewBody: "b", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed review: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		c := domain.Comment{Body: "c", ReviewID: 2, Author: "bainesface", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed comment: %v", err)
		}
	}
	return db
}

func newScenarioServices(db *gorm.DB) (*ReviewService, *CommentService) {
	ex := NewExistence(db)
	p := query.DefaultPaginator()
	return NewReviewService(db, sqlRepo{}, query.DefaultReviewWhitelist(), p, ex),
		NewCommentService(db, sqlRepo{}, query.DefaultCommentWhitelist(), p, ex)
}

func TestScenario_ThirteenReviewsLimitFive(t *testing.T) {
	reviews, _ := newScenarioServices(newScenarioDB(t))

	rows, total, _, err := reviews.List(context.Background(), query.ListSpec{Limit: intp(5)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 5 || total != 13 {
		t.Fatalf("expected 5 rows of 13, got %d of %d", len(rows), total)
	}
	for _, r := range rows {
		if r.TotalReviews != 13 {
			t.Fatalf("total_reviews differs across rows: %d", r.TotalReviews)
		}
	}
}

func TestScenario_SortAndFilter(t *testing.T) {
	reviews, _ := newScenarioServices(newScenarioDB(t))
	ctx := context.Background()

	rows, _, _, err := reviews.List(ctx, query.ListSpec{SortColumn: "category", Order: query.Asc, Limit: intp(13)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Category > rows[i].Category {
			t.Fatalf("not ascending by category at %d", i)
		}
	}

	if _, _, _, err := reviews.List(ctx, query.ListSpec{SortColumn: "doesnotexist"}); !apperr.IsKind(err, apperr.KindInvalidSortQuery) {
		t.Fatalf("expected InvalidSortQuery, got %v", err)
	}

	// Empty filter means unfiltered.
	_, total, _, err := reviews.List(ctx, query.ListSpec{FilterValue: ""})
	if err != nil || total != 13 {
		t.Fatalf("expected unfiltered total 13, got %d err=%v", total, err)
	}

	_, total, _, err = reviews.List(ctx, query.ListSpec{FilterValue: "social deduction"})
	if err != nil || total != 11 {
		t.Fatalf("expected 11 social deduction reviews, got %d err=%v", total, err)
	}

	rows, total, _, err = reviews.List(ctx, query.ListSpec{FilterValue: "children's games"})
	if err != nil || len(rows) != 0 || total != 0 {
		t.Fatalf("expected known empty category to succeed empty, got %d rows err=%v", len(rows), err)
	}

	if _, _, _, err := reviews.List(ctx, query.ListSpec{FilterValue: "bananas"}); !errors.Is(err, ErrCategoryDoesNotExist) {
		t.Fatalf("expected ErrCategoryDoesNotExist, got %v", err)
	}
}

func TestScenario_PageBeyondEnd(t *testing.T) {
	reviews, _ := newScenarioServices(newScenarioDB(t))

	rows, total, page, err := reviews.List(context.Background(), query.ListSpec{Page: intp(3)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rows == nil || len(rows) != 0 || total != 13 || page.Offset != 20 {
		t.Fatalf("expected empty page with total 13 at offset 20, got %d rows total=%d page=%+v", len(rows), total, page)
	}
}

func TestScenario_CommentsLifecycle(t *testing.T) {
	db := newScenarioDB(t)
	_, comments := newScenarioServices(db)
	ctx := context.Background()

	rows, total, _, err := comments.ListForReview(ctx, 2, query.ListSpec{})
	if err != nil || len(rows) != 3 || total != 3 {
		t.Fatalf("expected 3 comments on review 2, got %d/%d err=%v", len(rows), total, err)
	}
	if _, _, _, err := comments.ListForReview(ctx, 999, query.ListSpec{}); !errors.Is(err, ErrReviewDoesNotExist) {
		t.Fatalf("expected ErrReviewDoesNotExist, got %v", err)
	}

	if _, err := comments.Create(ctx, 999, strp("mallionaire"), strp("hi")); !errors.Is(err, ErrReviewDoesNotExist) {
		t.Fatalf("expected ErrReviewDoesNotExist on post, got %v", err)
	}
	if _, err := comments.Create(ctx, 1, strp("ghost"), strp("hi")); !errors.Is(err, ErrUserDoesNotExist) {
		t.Fatalf("expected ErrUserDoesNotExist on post, got %v", err)
	}
	c, err := comments.Create(ctx, 1, strp("mallionaire"), strp("hi"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := comments.Delete(ctx, 999); !errors.Is(err, ErrCommentDoesNotExist) {
		t.Fatalf("expected ErrCommentDoesNotExist, got %v", err)
	}
	if err := comments.Delete(ctx, c.CommentID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := comments.Exists.Comment(ctx, c.CommentID); !errors.Is(err, ErrCommentDoesNotExist) {
		t.Fatalf("expected comment to be gone after delete, got %v", err)
	}
}

func TestScenario_CreateReview(t *testing.T) {
	reviews, _ := newScenarioServices(newScenarioDB(t))
	ctx := context.Background()

	d, err := reviews.Create(ctx, NewReviewInput{
		Owner: strp("bainesface"), Title: strp("Catan"), ReviewBody: strp("Sheep for wood"),
		Designer: strp("Klaus Teuber"), Category: strp("euro game"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ReviewID != 14 || d.ReviewImgURL != DefaultReviewImgURL || d.CommentCount != 0 {
		t.Fatalf("unexpected created review: %+v", d)
	}

	_, err = reviews.Create(ctx, NewReviewInput{Owner: strp("ghost"), Title: strp("t"), ReviewBody: strp("b"), Category: strp("euro game")})
	if !errors.Is(err, ErrUserDoesNotExist) {
		t.Fatalf("expected ErrUserDoesNotExist, got %v", err)
	}
	_, err = reviews.Create(ctx, NewReviewInput{Owner: strp("bainesface"), ReviewBody: strp("b"), Category: strp("euro game")})
	if !apperr.IsKind(apperr.NewClassifier(false).Classify(err), apperr.KindMissingRequiredInformation) {
		t.Fatalf("expected missing title to classify as missing information, got %v", err)
	}
}
