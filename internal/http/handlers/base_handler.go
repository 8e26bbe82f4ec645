// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripzy/internal/planner"
	"tripzy/internal/trip"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeGenerationError maps the orchestrator's failure taxonomy onto HTTP
// statuses. Timeout gets its own status so clients can offer a retry.
func writeGenerationError(c *gin.Context, err error) {
	if errors.Is(err, trip.ErrInvalidPreferences) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, planner.ErrSuperseded) {
		writeError(c, http.StatusConflict, err.Error())
		return
	}

	var failure *planner.Failure
	if errors.As(err, &failure) {
		status := http.StatusInternalServerError
		switch failure.Kind {
		case planner.FailureTimeout:
			status = http.StatusGatewayTimeout
		case planner.FailureTransport, planner.FailureEmptyResponse:
			status = http.StatusBadGateway
		case planner.FailureMalformedPayload, planner.FailureInvalidJSON, planner.FailureSchemaViolation:
			status = http.StatusUnprocessableEntity
		}
		writeJSON(c, status, errorResponse{Error: failure.Error(), Kind: string(failure.Kind)})
		return
	}

	writeError(c, http.StatusInternalServerError, "internal error")
}
