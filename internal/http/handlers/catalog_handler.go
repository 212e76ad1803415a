package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/game-reviews-api/internal/domain"
)

// CreateCategoryRequest is the JSON payload for adding a category.
type CreateCategoryRequest struct {
	Slug        *string `json:"slug"        example:"strategy"`
	Description *string `json:"description" example:"Games that reward long-term planning"`
}

// CategoriesResponse wraps all categories.
type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// CategoryResponse wraps a single category.
type CategoryResponse struct {
	Category *domain.Category `json:"category"`
}

// UsersResponse wraps all users.
type UsersResponse struct {
	Users []domain.User `json:"users"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Tags        Categories
// @Produce     json
// @Success     200  {object}  handlers.CategoriesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, CategoriesResponse{Categories: cats})
}

// CreateCategory godoc
// @ID          createCategory
// @Summary     Create a category
// @Tags        Categories
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateCategoryRequest  true  "New category"
// @Success     201  {object}  handlers.CategoryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing slug"
// @Failure     409  {object}  handlers.ErrorResponse  "Category already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /categories [post]
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := bindBody(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	cat, err := h.categories.Create(c.Request.Context(), req.Slug, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, CategoryResponse{Category: cat})
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.UsersResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, UsersResponse{Users: users})
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user
// @Tags        Users
// @Produce     json
// @Param       username  path  string  true  "Username"  example(mallionaire)
// @Success     200  {object}  handlers.UserResponse
// @Failure     404  {object}  handlers.ErrorResponse  "User does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{username} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, http.StatusOK, UserResponse{User: u})
}
