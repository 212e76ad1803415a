// Package services defines the business logic for reviews, comments,
// categories and users. This file centralizes the service-level error values
// so that they are returned consistently by service methods.
//
// Each value is a classified *apperr.Error: the HTTP layer renders it as-is
// through the classifier's domain stage, so the status and message below are
// exactly what clients see.
package services

import (
	"net/http"

	"github.com/tbourn/game-reviews-api/internal/apperr"
)

// Not-found errors, one per entity.
var (
	// ErrReviewDoesNotExist indicates that the requested review id is unknown.
	ErrReviewDoesNotExist = apperr.NotFound("Review Does Not Exist")

	// ErrCommentDoesNotExist indicates that the requested comment id is unknown.
	ErrCommentDoesNotExist = apperr.NotFound("Comment Does Not Exist")

	// ErrCategoryDoesNotExist is returned when a listing filters by a
	// category slug that is not in the categories table.
	ErrCategoryDoesNotExist = apperr.NotFound("Category Does Not Exist")

	// ErrUserDoesNotExist is returned for unknown usernames, including the
	// author of a new comment.
	ErrUserDoesNotExist = apperr.NotFound("User Does Not Exist")
)

// Request-shape errors raised before any storage access.
var (
	// ErrNoVotesProvided is returned when a vote patch carries no increment.
	ErrNoVotesProvided = apperr.New(apperr.KindMissingRequiredInformation, http.StatusBadRequest, "No Votes Provided")

	// ErrMissingRequiredInformation is returned when a create request lacks
	// a field that has no database-side NOT NULL check to fall back on.
	ErrMissingRequiredInformation = apperr.New(apperr.KindMissingRequiredInformation, http.StatusBadRequest, "Missing Required Information")
)
