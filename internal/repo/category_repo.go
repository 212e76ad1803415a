// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Category
// and User models, which are small lookup tables referenced by reviews.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/game-reviews-api/internal/domain"
)

// ListCategories returns every category ordered by slug.
func ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	out := []domain.Category{}
	err := db.WithContext(ctx).Order("slug ASC").Find(&out).Error
	return out, err
}

// InsertCategory inserts a category. A nil description reaches the database
// as NULL; a duplicate slug surfaces as a unique violation.
func InsertCategory(ctx context.Context, db *gorm.DB, slug string, description *string) (*domain.Category, error) {
	var c domain.Category
	err := db.WithContext(ctx).Raw(
		"INSERT INTO categories (slug, description) VALUES (?, ?) RETURNING slug, description;",
		slug, description,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListUsers returns every user ordered by username.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := []domain.User{}
	err := db.WithContext(ctx).Order("username ASC").Find(&out).Error
	return out, err
}

// GetUser fetches a user by username, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
