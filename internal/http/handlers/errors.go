package handlers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/game-reviews-api/internal/apperr"
	"github.com/tbourn/game-reviews-api/internal/utils"
)

// pathID reads a positive integer path parameter. Anything else is an
// InvalidDataType raised before the service is called.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, ok := utils.ID(raw)
	if !ok {
		return 0, apperr.InvalidDataType("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

// bindBody decodes the JSON body into dst. An empty body leaves dst at its
// zero value so that absent fields surface as missing information rather
// than as a format error.
func bindBody(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.InvalidDataType("%s must be %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return apperr.InvalidDataType("request body is not valid JSON")
}
