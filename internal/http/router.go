// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripzy/internal/geocode"
	"tripzy/internal/http/handlers"
	"tripzy/internal/http/middleware"
	"tripzy/internal/planner"
)

func NewRouter(plannerSvc *planner.Service, resolver *geocode.Resolver) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	geocodeHandler := handlers.NewGeocodeHandler(resolver)
	r.POST("/api/geocode", geocodeHandler.Resolve)

	sessionHandler := handlers.NewSessionHandler(plannerSvc)
	r.POST("/api/sessions", sessionHandler.Create)
	r.GET("/api/sessions/:id", sessionHandler.Get)
	r.POST("/api/sessions/:id/reset", sessionHandler.Reset)
	r.POST("/api/sessions/:id/itinerary", sessionHandler.Plan)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
