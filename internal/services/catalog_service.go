// Package services – CategoryService and UserService
//
// Categories and users are small lookup collections: they are listed whole
// and referenced by reviews and comments.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/domain"
)

// CategoryRepo defines the repository contract required by CategoryService.
type CategoryRepo interface {
	ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error)
	InsertCategory(ctx context.Context, db *gorm.DB, slug string, description *string) (*domain.Category, error)
}

// CategoryService lists and creates categories.
type CategoryService struct {
	DB   *gorm.DB
	Repo CategoryRepo
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Repo.ListCategories(ctx, s.DB)
}

// Create adds a category. The slug is required and normalized here; SQLite
// would otherwise accept a NULL text primary key.
func (s *CategoryService) Create(ctx context.Context, slug, description *string) (*domain.Category, error) {
	if slug == nil {
		return nil, ErrMissingRequiredInformation.WithDetail("slug")
	}
	key := normalizeKey(*slug)
	if key == "" {
		return nil, ErrMissingRequiredInformation.WithDetail("slug")
	}
	return s.Repo.InsertCategory(ctx, s.DB, key, description)
}

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
	GetUser(ctx context.Context, db *gorm.DB, username string) (*domain.User, error)
}

// UserService reads users.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepo
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Repo.ListUsers(ctx, s.DB)
}

// Get returns a user by username, or ErrUserDoesNotExist.
func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.Repo.GetUser(ctx, s.DB, normalizeKey(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserDoesNotExist
	}
	return u, err
}
