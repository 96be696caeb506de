package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/catalog"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

type settingsHandler struct {
	responder Responder
	logger    zerolog.Logger
	settings  *catalog.Settings
}

func newSettingsHandler(settings *catalog.Settings) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		settings:  settings,
	}
}

// getSettings returns the site owner profile
// @Summary Get site settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.SiteSettings "Site settings"
// @Router /settings [get]
func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settings.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// updateSettings replaces the site owner profile
// @Summary Update site settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.SiteSettings true "Site settings"
// @Success 200 {object} models.SiteSettings "Saved settings"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid settings"
// @Router /settings [put]
func (h settingsHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings models.SiteSettings
		if err := decodeJSON(w, r, &settings, "settings"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		saved, err := h.settings.Save(r.Context(), settings)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, saved)
	}
}
