// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Review model.
//
// Listing queries are not composed here: callers pass a query.Statement built
// by the query package, whose SQL carries only whitelisted identifiers and
// whose values are all bound parameters. This package only executes it.
//
// Error semantics:
//   - When a review is not found, functions return ErrNotFound.
//   - Constraint violations and driver errors are returned raw so the
//     apperr classifier can map them.
//
// Functions:
//
//   - ListReviews(ctx, db, stmt) -> []domain.ReviewRow, error
//   - CountReviews(ctx, db, stmt) -> int64, error
//   - GetReview(ctx, db, id) -> *domain.Review, error
//   - GetReviewWithCount(ctx, db, id) -> *domain.ReviewDetail, error
//   - InsertReview(ctx, db, in) -> *domain.Review, error
//   - IncrementReviewVotes(ctx, db, id, inc) -> *domain.Review, error
//   - DeleteReview(ctx, db, id) -> error
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

const reviewColumns = "reviews.review_id, reviews.title, reviews.category, reviews.designer, " +
	"reviews.owner, reviews.review_body, reviews.review_img_url, reviews.created_at, reviews.votes"

// NewReview carries the fields of a review to insert. Required fields are
// pointers so that an absent value reaches the database as NULL and fails
// the NOT NULL constraint there.
type NewReview struct {
	Owner        *string
	Title        *string
	ReviewBody   *string
	Category     *string
	Designer     string
	ReviewImgURL string
}

// ListReviews executes an assembled listing statement. It always returns a
// non-nil slice.
func ListReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.ReviewRow, error) {
	out := make([]domain.ReviewRow, 0, stmt.Page.Limit)
	if err := db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&out).Error; err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ReviewRow{}
	}
	return out, nil
}

// CountReviews executes a COUNT statement built by query.Assembler.Count.
func CountReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error) {
	return countStatement(ctx, db, stmt)
}

func countStatement(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&total).Error
	return total, err
}

// GetReview fetches a single review by id, or ErrNotFound.
func GetReview(ctx context.Context, db *gorm.DB, id int64) (*domain.Review, error) {
	var r domain.Review
	if err := db.WithContext(ctx).Where("review_id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// GetReviewWithCount fetches a review together with its number of comments.
func GetReviewWithCount(ctx context.Context, db *gorm.DB, id int64) (*domain.ReviewDetail, error) {
	var d domain.ReviewDetail
	res := db.WithContext(ctx).Raw(
		"SELECT "+reviewColumns+", COUNT(comments.comment_id) AS comment_count"+
			" FROM reviews LEFT JOIN comments ON comments.review_id = reviews.review_id"+
			" WHERE reviews.review_id = ? GROUP BY reviews.review_id;", id,
	).Scan(&d)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &d, nil
}

// InsertReview inserts a review and returns the stored row, including the
// database-assigned id, created_at and votes.
//
// Only the id is taken from RETURNING; the row is then read back with a
// plain SELECT so column types are decoded the same way on every driver.
func InsertReview(ctx context.Context, db *gorm.DB, in NewReview) (*domain.Review, error) {
	var id int64
	err := db.WithContext(ctx).Raw(
		"INSERT INTO reviews (owner, title, review_body, designer, category, review_img_url)"+
			" VALUES (?, ?, ?, ?, ?, ?) RETURNING review_id;",
		in.Owner, in.Title, in.ReviewBody, in.Designer, in.Category, in.ReviewImgURL,
	).Scan(&id).Error
	if err != nil {
		return nil, err
	}
	return GetReview(ctx, db, id)
}

// IncrementReviewVotes adds inc (which may be negative) to a review's votes
// and returns the updated row. It returns ErrNotFound if no review matched.
func IncrementReviewVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Review, error) {
	res := db.WithContext(ctx).Exec("UPDATE reviews SET votes = votes + ? WHERE review_id = ?;", inc, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetReview(ctx, db, id)
}

// DeleteReview removes a review; its comments go with it through the
// cascading foreign key. It returns ErrNotFound if no review matched.
func DeleteReview(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Exec("DELETE FROM reviews WHERE review_id = ?;", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
