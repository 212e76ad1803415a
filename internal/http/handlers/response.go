// Package handlers provides the HTTP handlers of the reviews API.
//
// This file holds the response helpers shared by every endpoint. Failures
// always leave through fail(), which runs the error classifier and writes
// the standard envelope:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "msg": "Review Does Not Exist"
//	}
//
// Successes are written with ok() and noContent().
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/game-reviews-api/internal/apperr"
	"github.com/tbourn/game-reviews-api/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable kind
	Code string `json:"code" example:"not_found"`
	// Human-readable message
	Msg string `json:"msg" example:"Review Does Not Exist"`
	// Optional diagnostic context (constraint detail, offending parameter)
	Detail string `json:"detail,omitempty" example:"sort_by \"votes; DROP TABLE reviews\" is not allowed"`
}

// fail classifies err and aborts the request with the matching envelope.
func (h *Handlers) fail(c *gin.Context, err error) {
	render(c, h.classifier.Classify(err))
}

// Fail writes an already classified error. The router uses it for the
// unknown-route and wrong-method fallbacks.
func Fail(c *gin.Context, err *apperr.Error) { render(c, err) }

// render writes ae and logs server-side failures with the request-scoped
// logger. The wrapped cause is logged but never sent to the client.
func render(c *gin.Context, ae *apperr.Error) {
	if ae.Status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", ae.Status).
			Str("code", string(ae.Kind))
		if ae.Err != nil {
			ev = ev.Err(ae.Err)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(ae.Status, ErrorResponse{
		RequestID: middleware.RequestIDFrom(c),
		Code:      string(ae.Kind),
		Msg:       ae.Msg,
		Detail:    ae.Detail,
	})
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
