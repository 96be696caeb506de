package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/catalog"
)

// setupRoutes mounts the public site routes and the token-protected admin routes
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(requestLogger(log.With().Str("component", "http").Logger()))

		// Public site
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Get("/settings", handlers.settingsHandler.getSettings())
		r.Post("/contact", handlers.contactHandler.submitContact())
		r.Post("/login", handlers.authHandler.login())

		// Admin panel
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/project/{projectID}/media/image", handlers.mediaHandler.attachImage())
			r.Post("/project/{projectID}/media/video", handlers.mediaHandler.attachVideo())
			r.Delete("/project/{projectID}/media/{mediaID}", handlers.mediaHandler.removeMedia())
			r.Put("/project/{projectID}/media/{mediaID}/main", handlers.mediaHandler.setMainImage())

			r.Put("/settings", handlers.settingsHandler.updateSettings())
		})
	})
}

func healthHandler(c *catalog.Catalog, startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthHandler").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, HealthResponse{
			Status:        "ok",
			Projects:      len(c.List()),
			UptimeSeconds: int64(time.Since(startupTime).Seconds()),
		})
	}
}
