// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
)

// ListComments executes an assembled comment listing. It always returns a
// non-nil slice.
func ListComments(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.CommentRow, error) {
	out := make([]domain.CommentRow, 0, stmt.Page.Limit)
	if err := db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&out).Error; err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.CommentRow{}
	}
	return out, nil
}

// CountComments executes a COUNT statement built by query.Assembler.Count.
func CountComments(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error) {
	return countStatement(ctx, db, stmt)
}

// InsertComment adds a comment to a review. A nil author or body reaches the
// database as NULL.
func InsertComment(ctx context.Context, db *gorm.DB, reviewID int64, author, body *string) (*domain.Comment, error) {
	var id int64
	err := db.WithContext(ctx).Raw(
		"INSERT INTO comments (review_id, author, body) VALUES (?, ?, ?) RETURNING comment_id;",
		reviewID, author, body,
	).Scan(&id).Error
	if err != nil {
		return nil, err
	}
	return GetComment(ctx, db, id)
}

// GetComment fetches a single comment by id, or ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id int64) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("comment_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementCommentVotes adds inc to a comment's votes and returns the
// updated row, or ErrNotFound.
func IncrementCommentVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Comment, error) {
	res := db.WithContext(ctx).Exec("UPDATE comments SET votes = votes + ? WHERE comment_id = ?;", inc, id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetComment(ctx, db, id)
}

// DeleteComment removes a comment. It returns ErrNotFound if nothing matched.
func DeleteComment(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Exec("DELETE FROM comments WHERE comment_id = ?;", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
