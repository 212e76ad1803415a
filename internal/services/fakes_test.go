package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/repo"
)

// ----- Fake repos -----

// fakeReviewRepo records every call so tests can assert that storage was
// (or was not) reached.
type fakeReviewRepo struct {
	calls int

	listStmt  query.Statement
	listRows  []domain.ReviewRow
	listErr   error
	countStmt query.Statement
	count     int64
	countErr  error

	detail    *domain.ReviewDetail
	detailErr error

	inserted  repo.NewReview
	insertErr error

	voteID  int64
	voteInc int
	voteErr error

	deleteErr error
}

func (r *fakeReviewRepo) ListReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.ReviewRow, error) {
	r.calls++
	r.listStmt = stmt
	return r.listRows, r.listErr
}

func (r *fakeReviewRepo) CountReviews(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error) {
	r.calls++
	r.countStmt = stmt
	return r.count, r.countErr
}

func (r *fakeReviewRepo) GetReviewWithCount(ctx context.Context, db *gorm.DB, id int64) (*domain.ReviewDetail, error) {
	r.calls++
	return r.detail, r.detailErr
}

func (r *fakeReviewRepo) InsertReview(ctx context.Context, db *gorm.DB, in repo.NewReview) (*domain.Review, error) {
	r.calls++
	r.inserted = in
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	out := &domain.Review{ReviewID: 14, ReviewImgURL: in.ReviewImgURL, Designer: in.Designer}
	if in.Owner != nil {
		out.Owner = *in.Owner
	}
	if in.Category != nil {
		out.Category = *in.Category
	}
	return out, nil
}

func (r *fakeReviewRepo) IncrementReviewVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Review, error) {
	r.calls++
	r.voteID, r.voteInc = id, inc
	if r.voteErr != nil {
		return nil, r.voteErr
	}
	return &domain.Review{ReviewID: id, Votes: inc}, nil
}

func (r *fakeReviewRepo) DeleteReview(ctx context.Context, db *gorm.DB, id int64) error {
	r.calls++
	return r.deleteErr
}

type fakeCommentRepo struct {
	calls int

	listStmt  query.Statement
	listRows  []domain.CommentRow
	listErr   error
	countStmt query.Statement
	count     int64

	author, body *string
	insertErr    error

	voteErr   error
	deleteErr error
}

func (r *fakeCommentRepo) ListComments(ctx context.Context, db *gorm.DB, stmt query.Statement) ([]domain.CommentRow, error) {
	r.calls++
	r.listStmt = stmt
	return r.listRows, r.listErr
}

func (r *fakeCommentRepo) CountComments(ctx context.Context, db *gorm.DB, stmt query.Statement) (int64, error) {
	r.calls++
	r.countStmt = stmt
	return r.count, nil
}

func (r *fakeCommentRepo) InsertComment(ctx context.Context, db *gorm.DB, reviewID int64, author, body *string) (*domain.Comment, error) {
	r.calls++
	r.author, r.body = author, body
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	return &domain.Comment{CommentID: 7, ReviewID: reviewID}, nil
}

func (r *fakeCommentRepo) IncrementCommentVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Comment, error) {
	r.calls++
	if r.voteErr != nil {
		return nil, r.voteErr
	}
	return &domain.Comment{CommentID: id, Votes: inc}, nil
}

func (r *fakeCommentRepo) DeleteComment(ctx context.Context, db *gorm.DB, id int64) error {
	r.calls++
	return r.deleteErr
}

// fakeProbe answers existence checks from a fixed set and records what was
// asked.
type fakeProbe struct {
	present map[string]bool
	asked   []string
	err     error
}

func (p *fakeProbe) exists(ctx context.Context, db *gorm.DB, key repo.Key, value any) (bool, error) {
	k := key.String() + "=" + fmt.Sprint(value)
	p.asked = append(p.asked, k)
	if p.err != nil {
		return false, p.err
	}
	return p.present[k], nil
}

func (p *fakeProbe) existence() *Existence {
	return &Existence{Probe: p.exists}
}

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }
