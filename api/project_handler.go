package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/catalog"
	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *catalog.Catalog
}

func newProjectHandler(c *catalog.Catalog) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   c,
	}
}

// getAllProjects lists the catalog, optionally filtered by category
// @Summary Get all projects
// @Description Retrieves the projects in catalog order. category=all or no category returns every project.
// @Tags Projects
// @Produce json
// @Param category query string false "Category tag"
// @Success 200 {object} ProjectCollection "List of projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects := h.catalog.FilterByCategory(r.URL.Query().Get("category"))

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} models.Project "Project details"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.catalog.FindByID(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject adds a project to the end of the catalog
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error persisting catalog"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.Project
		if err := decodeJSON(w, r, &draft, "project"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.catalog.Create(r.Context(), draft)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("admin", ctxGetUsername(r.Context())).Str("projectID", project.ID).Msg("Project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject replaces a project, keeping its id and position
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := decodeJSON(w, r, &project, "project"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// The path wins over any id in the body
		project.ID = chi.URLParam(r, "projectID")

		updated, err := h.catalog.Update(r.Context(), project)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("admin", ctxGetUsername(r.Context())).Str("projectID", updated.ID).Msg("Project updated")
		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes a project. Deleting an unknown id succeeds.
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} StatusResponse "Success message"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error persisting catalog"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := chi.URLParam(r, "projectID")
		if projectID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		if err := h.catalog.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("admin", ctxGetUsername(r.Context())).Str("projectID", projectID).Msg("Project deleted")
		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "project deleted successfully",
		})
	}
}
