// README: Planning session lifecycle and itinerary generation handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripzy/internal/planner"
	"tripzy/internal/trip"
)

type SessionHandler struct {
	planner *planner.Service
}

func NewSessionHandler(svc *planner.Service) *SessionHandler {
	return &SessionHandler{planner: svc}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.planner.CreateSession()
	writeJSON(c, http.StatusCreated, sess.Snapshot())
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.planner.Session(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, sess.Snapshot())
}

// Reset handles POST /api/sessions/:id/reset.
func (h *SessionHandler) Reset(c *gin.Context) {
	sess, err := h.planner.Session(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	sess.Reset()
	writeJSON(c, http.StatusOK, sess.Snapshot())
}

// Plan handles POST /api/sessions/:id/itinerary. The request blocks until
// the generation attempt settles (or is superseded) and returns the
// terminal outcome.
func (h *SessionHandler) Plan(c *gin.Context) {
	sess, err := h.planner.Session(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}

	var prefs trip.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.planner.Generate(c.Request.Context(), sess, prefs)
	if err != nil {
		writeGenerationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
