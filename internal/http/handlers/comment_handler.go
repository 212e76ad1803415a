// Comment HTTP handlers.
//
// Endpoints:
//   - GET    /reviews/{review_id}/comments  (list, paginated)
//   - POST   /reviews/{review_id}/comments  (create)
//   - PATCH  /comments/{comment_id}         (vote)
//   - DELETE /comments/{comment_id}         (delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
)

// CreateCommentRequest is the JSON payload for commenting on a review.
type CreateCommentRequest struct {
	// Username of the author; must exist.
	Username *string `json:"username" example:"bainesface"`
	// Body is the comment text.
	Body *string `json:"body" example:"I loved this game too!"`
}

// ListCommentsResponse wraps a page of comments and pagination information.
type ListCommentsResponse struct {
	Comments   []domain.CommentRow `json:"comments"`
	Pagination Pagination          `json:"pagination"`
}

// CommentResponse wraps a single comment.
type CommentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments for a review (paginated)
// @Description Returns a page of the review's comments. A review without comments yields an empty array; a missing review is a 404.
// @Tags        Comments
// @Produce     json
//
// @Param       review_id  path   int     true   "Review ID"  minimum(1) example(2)
// @Param       sort_by    query  string  false  "Sort column"  Enums(created_at, comment_id, author, votes) default(created_at)
// @Param       order      query  string  false  "Sort direction"  Enums(asc, desc) default(desc)
// @Param       limit      query  int     false  "Page size; values above LIST_MAX_LIMIT are clamped and pagination.limit reports the applied size"  minimum(1) default(10)
// @Param       p          query  int     false  "Page number"  minimum(1) default(1)
//
// @Success     200  {object}  handlers.ListCommentsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id, sort or query value"
// @Failure     404  {object}  handlers.ErrorResponse  "Review does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reviews/{review_id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	spec, err := query.ParseListSpec(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}

	rows, total, page, err := h.comments.ListForReview(c.Request.Context(), reviewID, spec)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, ListCommentsResponse{Comments: rows, Pagination: newPagination(page, total)})
}

// CreateComment godoc
// @ID          createComment
// @Summary     Comment on a review
// @Description Adds a comment by an existing user to an existing review.
// @Tags        Comments
// @Accept      json
// @Produce     json
//
// @Param       review_id  path  int                            true  "Review ID"  minimum(1) example(2)
// @Param       body       body  handlers.CreateCommentRequest  true  "New comment"
//
// @Success     201  {object}  handlers.CommentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id or missing field"
// @Failure     404  {object}  handlers.ErrorResponse  "Review or user does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reviews/{review_id}/comments [post]
func (h *Handlers) CreateComment(c *gin.Context) {
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req CreateCommentRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	cm, err := h.comments.Create(c.Request.Context(), reviewID, req.Username, req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, CommentResponse{Comment: cm})
}

// PatchComment godoc
// @ID          patchComment
// @Summary     Vote on a comment
// @Description Adds inc_votes (positive or negative) to the comment's votes.
// @Tags        Comments
// @Accept      json
// @Produce     json
//
// @Param       comment_id  path  int                   true  "Comment ID"  minimum(1) example(1)
// @Param       body        body  handlers.VoteRequest  true  "Vote increment"
//
// @Success     200  {object}  handlers.CommentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id or no votes provided"
// @Failure     404  {object}  handlers.ErrorResponse  "Comment does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /comments/{comment_id} [patch]
func (h *Handlers) PatchComment(c *gin.Context) {
	id, err := pathID(c, "comment_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req VoteRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	cm, err := h.comments.Vote(c.Request.Context(), id, req.inc())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, CommentResponse{Comment: cm})
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Tags        Comments
//
// @Param       comment_id  path  int  true  "Comment ID"  minimum(1) example(1)
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid comment id"
// @Failure     404  {object}  handlers.ErrorResponse  "Comment does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /comments/{comment_id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	id, err := pathID(c, "comment_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}
