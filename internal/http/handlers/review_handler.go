// Review HTTP handlers.
//
// Endpoints:
//   - GET    /reviews              (list, filter, sort, paginate)
//   - POST   /reviews              (create)
//   - GET    /reviews/{review_id}  (fetch with comment count)
//   - PATCH  /reviews/{review_id}  (vote)
//   - DELETE /reviews/{review_id}  (delete, cascades to comments)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/game-reviews-api/internal/domain"
	"github.com/tbourn/game-reviews-api/internal/query"
	"github.com/tbourn/game-reviews-api/internal/services"
)

// CreateReviewRequest is the JSON payload for creating a review. Owner,
// title, review_body and category are required; designer and
// review_img_url are optional.
type CreateReviewRequest struct {
	Owner        *string `json:"owner"          example:"mallionaire"`
	Title        *string `json:"title"          example:"Agricola"`
	ReviewBody   *string `json:"review_body"    example:"Farmyard fun!"`
	Designer     *string `json:"designer"       example:"Uwe Rosenberg"`
	Category     *string `json:"category"       example:"euro game"`
	ReviewImgURL *string `json:"review_img_url" example:"https://images.pexels.com/photos/974314/pexels-photo-974314.jpeg?w=700&h=700"`
}

// ListReviewsResponse wraps a page of reviews and pagination information.
type ListReviewsResponse struct {
	Reviews    []domain.ReviewRow `json:"reviews"`
	Pagination Pagination         `json:"pagination"`
}

// ReviewResponse wraps a single review.
type ReviewResponse struct {
	Review *domain.ReviewDetail `json:"review"`
}

// VotedReviewResponse wraps a review after a vote.
type VotedReviewResponse struct {
	Review *domain.Review `json:"review"`
}

// ListReviews godoc
// @ID          listReviews
// @Summary     List reviews (paginated)
// @Description Returns a page of reviews with comment counts. Every row carries total_reviews, the number of matching reviews before pagination. A page past the end is an empty array.
// @Tags        Reviews
// @Produce     json
//
// @Param       category  query  string  false  "Category slug filter (blank = all)"  example(social deduction)
// @Param       sort_by   query  string  false  "Sort column"  Enums(review_id, owner, title, category, created_at, votes, designer, comment_count) default(created_at)
// @Param       order     query  string  false  "Sort direction"  Enums(asc, desc) default(desc)
// @Param       limit     query  int     false  "Page size; values above LIST_MAX_LIMIT are clamped and pagination.limit reports the applied size"  minimum(1) default(10)
// @Param       p         query  int     false  "Page number"  minimum(1) default(1)
//
// @Success     200  {object}  handlers.ListReviewsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid sort or query value"
// @Failure     404  {object}  handlers.ErrorResponse  "Category does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	spec, err := query.ParseListSpec(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}

	rows, total, page, err := h.reviews.List(c.Request.Context(), spec)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, ListReviewsResponse{Reviews: rows, Pagination: newPagination(page, total)})
}

// GetReview godoc
// @ID          getReview
// @Summary     Get a review
// @Description Returns one review with its comment count.
// @Tags        Reviews
// @Produce     json
//
// @Param       review_id  path  int  true  "Review ID"  minimum(1) example(2)
//
// @Success     200  {object}  handlers.ReviewResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid review id"
// @Failure     404  {object}  handlers.ErrorResponse  "Review does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reviews/{review_id} [get]
func (h *Handlers) GetReview(c *gin.Context) {
	id, err := pathID(c, "review_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	r, err := h.reviews.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, ReviewResponse{Review: r})
}

// CreateReview godoc
// @ID          createReview
// @Summary     Create a review
// @Description Stores a review. Unknown owner or category is reported as a 404 for that entity.
// @Tags        Reviews
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateReviewRequest  true  "New review"
//
// @Success     201  {object}  handlers.ReviewResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or malformed field"
// @Failure     404  {object}  handlers.ErrorResponse  "User or category does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reviews [post]
func (h *Handlers) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	r, err := h.reviews.Create(c.Request.Context(), services.NewReviewInput{
		Owner:        req.Owner,
		Title:        req.Title,
		ReviewBody:   req.ReviewBody,
		Designer:     req.Designer,
		Category:     req.Category,
		ReviewImgURL: req.ReviewImgURL,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, ReviewResponse{Review: r})
}

// PatchReview godoc
// @ID          patchReview
// @Summary     Vote on a review
// @Description Adds inc_votes (positive or negative) to the review's votes.
// @Tags        Reviews
// @Accept      json
// @Produce     json
//
// @Param       review_id  path  int                      true  "Review ID"  minimum(1) example(2)
// @Param       body       body  handlers.VoteRequest  true  "Vote increment"
//
// @Success     200  {object}  handlers.VotedReviewResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id or no votes provided"
// @Failure     404  {object}  handlers.ErrorResponse  "Review does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reviews/{review_id} [patch]
func (h *Handlers) PatchReview(c *gin.Context) {
	id, err := pathID(c, "review_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req VoteRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	r, err := h.reviews.Vote(c.Request.Context(), id, req.inc())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, VotedReviewResponse{Review: r})
}

// DeleteReview godoc
// @ID          deleteReview
// @Summary     Delete a review
// @Description Removes a review together with its comments.
// @Tags        Reviews
//
// @Param       review_id  path  int  true  "Review ID"  minimum(1) example(2)
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid review id"
// @Failure     404  {object}  handlers.ErrorResponse  "Review does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reviews/{review_id} [delete]
func (h *Handlers) DeleteReview(c *gin.Context) {
	id, err := pathID(c, "review_id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}
