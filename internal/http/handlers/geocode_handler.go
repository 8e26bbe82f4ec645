// README: Destination resolution handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripzy/internal/geocode"
	"tripzy/internal/trip"
)

type GeocodeHandler struct {
	resolver *geocode.Resolver
}

func NewGeocodeHandler(resolver *geocode.Resolver) *GeocodeHandler {
	return &GeocodeHandler{resolver: resolver}
}

type geocodeRequest struct {
	Queries []string `json:"queries"`
}

type geocodeResponse struct {
	Destinations []trip.Destination `json:"destinations"`
}

// Resolve handles POST /api/geocode. Unresolvable entries are dropped
// silently; only an empty result set is an error the caller sees.
func (h *GeocodeHandler) Resolve(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Queries) == 0 {
		writeError(c, http.StatusBadRequest, "missing queries")
		return
	}

	destinations, err := h.resolver.Resolve(c.Request.Context(), req.Queries)
	if err != nil {
		// The client went away mid-resolution; nothing useful to write.
		c.Abort()
		return
	}
	if len(destinations) == 0 {
		writeError(c, http.StatusUnprocessableEntity, "no destinations could be resolved")
		return
	}

	writeJSON(c, http.StatusOK, geocodeResponse{Destinations: destinations})
}
