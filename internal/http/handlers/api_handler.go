package handlers

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed endpoints.json
var endpointsJSON []byte

// EndpointsResponse describes every route of the API.
type EndpointsResponse struct {
	Endpoints json.RawMessage `json:"endpoints" swaggertype:"object"`
}

// GetEndpoints godoc
// @ID          getEndpoints
// @Summary     Describe the API
// @Description Serves a JSON description of every available endpoint.
// @Tags        Meta
// @Produce     json
// @Success     200  {object}  handlers.EndpointsResponse
// @Router      / [get]
func (h *Handlers) GetEndpoints(c *gin.Context) {
	ok(c, http.StatusOK, EndpointsResponse{Endpoints: endpointsJSON})
}
