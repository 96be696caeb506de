package api

import (
	"time"

	"github.com/rpupo63/portfolio-catalog-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler  projectHandler
	mediaHandler    mediaHandler
	settingsHandler settingsHandler
	contactHandler  contactHandler
	authHandler     authHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// ProjectCollection represents a listing of projects
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

// MediaResponse carries the project after a media edit and the item added, if any
type MediaResponse struct {
	Project models.Project    `json:"project"`
	Media   *models.MediaItem `json:"media,omitempty"`
}

// MediaURLRequest attaches media by URL
type MediaURLRequest struct {
	URL string `json:"url"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Projects      int    `json:"projects"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}
