package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/models"
	"github.com/rpupo63/portfolio-catalog-backend/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	notifier  *services.ContactNotifier
}

func newContactHandler(notifier *services.ContactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		notifier:  notifier,
	}
}

// submitContact forwards a contact form message to the site owner
// @Summary Send contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body models.ContactRequest true "Contact message"
// @Success 202 {object} StatusResponse "Message accepted"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid message"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Mail provider failed"
// @Router /contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ContactRequest
		if err := decodeJSON(w, r, &req, "contact"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.notifier.Notify(r.Context(), req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusAccepted, StatusResponse{
			Status:  "success",
			Message: "message received",
		})
	}
}
