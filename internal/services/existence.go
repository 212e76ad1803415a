package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/repo"
)

// ExistsFunc probes for a row; repo.Exists is the production implementation.
type ExistsFunc func(ctx context.Context, db *gorm.DB, key repo.Key, value any) (bool, error)

// Existence answers "does entity X exist" for the other services. It is
// only consulted after a primary operation came back with an ambiguous zero
// (empty list, no rows affected, a foreign-key failure), so the common path
// costs a single round trip.
type Existence struct {
	DB    *gorm.DB
	Probe ExistsFunc
}

// NewExistence returns a validator backed by repo.Exists.
func NewExistence(db *gorm.DB) *Existence {
	return &Existence{DB: db, Probe: repo.Exists}
}

func (e *Existence) check(ctx context.Context, key repo.Key, value any, missing error) error {
	ok, err := e.Probe(ctx, e.DB, key, value)
	if err != nil {
		return err
	}
	if !ok {
		return missing
	}
	return nil
}

// Review returns nil if the review exists, ErrReviewDoesNotExist if not.
func (e *Existence) Review(ctx context.Context, id int64) error {
	return e.check(ctx, repo.ReviewKey, id, ErrReviewDoesNotExist)
}

// Comment returns nil if the comment exists, ErrCommentDoesNotExist if not.
func (e *Existence) Comment(ctx context.Context, id int64) error {
	return e.check(ctx, repo.CommentKey, id, ErrCommentDoesNotExist)
}

// Category returns nil if the slug exists, ErrCategoryDoesNotExist if not.
func (e *Existence) Category(ctx context.Context, slug string) error {
	return e.check(ctx, repo.CategoryKey, slug, ErrCategoryDoesNotExist)
}

// User returns nil if the username exists, ErrUserDoesNotExist if not.
func (e *Existence) User(ctx context.Context, username string) error {
	return e.check(ctx, repo.UserKey, username, ErrUserDoesNotExist)
}
