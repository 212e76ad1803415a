// Package services – CommentService
//
// This file implements CommentService: listing the comments of one review,
// posting, voting on and deleting comments. An empty comment listing is
// resolved with an existence check on the parent review, so comments of a
// missing review are a 404 rather than an empty array.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
)

// CommentRepo defines the repository contract required by CommentService.
type CommentRepo interface {
	ListComments(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.CommentRow, error)
	CountComments(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error)
	InsertComment(ctx context.Context, db *gorm.DB, reviewID int64, author, body *string) (*domain.Comment, error)
	IncrementCommentVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Comment, error)
	DeleteComment(ctx context.Context, db *gorm.DB, id int64) error
}

// CommentService provides comment-level operations.
type CommentService struct {
	DB        *gorm.DB
	Repo      CommentRepo
	Assembler query.Assembler
	Exists    *Existence
}

// NewCommentService wires a CommentService over the comments resource.
func NewCommentService(db *gorm.DB, r CommentRepo, wl query.Whitelist, p query.Paginator, ex *Existence) *CommentService {
	return &CommentService{
		DB:   db,
		Repo: r,
		Assembler: query.Assembler{
			Resource:  query.CommentsResource,
			Whitelist: wl,
			Paginator: p,
		},
		Exists: ex,
	}
}

// ListForReview returns one page of a review's comments, the review's total
// comment count and the applied page window.
func (s *CommentService) ListForReview(ctx context.Context, reviewID int64, spec query.ListSpec) ([]domain.CommentRow, int64, query.Page, error) {
	scope := query.Eq("comments.review_id", reviewID)
	stmt, err := s.Assembler.Assemble(spec, scope)
	if err != nil {
		return nil, 0, query.Page{}, err
	}

	rows, err := s.Repo.ListComments(ctx, s.DB, stmt)
	if err != nil {
		return nil, 0, stmt.Page, err
	}
	if len(rows) > 0 {
		return rows, rows[0].TotalComments, stmt.Page, nil
	}

	if err := s.Exists.Review(ctx, reviewID); err != nil {
		return nil, 0, stmt.Page, err
	}
	var total int64
	if stmt.Page.Offset > 0 {
		if total, err = s.Repo.CountComments(ctx, s.DB, s.Assembler.Count(spec, scope)); err != nil {
			return nil, 0, stmt.Page, err
		}
	}
	return []domain.CommentRow{}, total, stmt.Page, nil
}

// Create posts a comment on a review. Missing author or body are rejected by
// the database. A foreign-key failure resolves to ErrReviewDoesNotExist or
// ErrUserDoesNotExist, checked in that order.
func (s *CommentService) Create(ctx context.Context, reviewID int64, author, body *string) (*domain.Comment, error) {
	author = normalizePtr(author)

	c, err := s.Repo.InsertComment(ctx, s.DB, reviewID, author, body)
	if err != nil {
		if isForeignKeyViolation(err) {
			if xerr := s.Exists.Review(ctx, reviewID); xerr != nil {
				return nil, xerr
			}
			if author != nil {
				if xerr := s.Exists.User(ctx, *author); xerr != nil {
					return nil, xerr
				}
			}
		}
		return nil, err
	}
	return c, nil
}

// Vote adds inc to a comment's votes. A zero increment is ErrNoVotesProvided.
func (s *CommentService) Vote(ctx context.Context, id int64, inc int) (*domain.Comment, error) {
	if inc == 0 {
		return nil, ErrNoVotesProvided
	}
	c, err := s.Repo.IncrementCommentVotes(ctx, s.DB, id, inc)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentDoesNotExist
	}
	return c, err
}

// Delete removes a comment, or returns ErrCommentDoesNotExist.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	err := s.Repo.DeleteComment(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentDoesNotExist
	}
	return err
}
