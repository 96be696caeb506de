package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
)

// Credentials is the single admin account accepted by /login
type Credentials struct {
	Username string
	Password string
}

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	credentials Credentials
	tokens      *TokenManager
}

func newAuthHandler(credentials Credentials, tokens *TokenManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		credentials: credentials,
		tokens:      tokens,
	}
}

// login exchanges the admin credentials for a bearer token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} LoginResponse "Bearer token"
// @Failure 401 {object} ErrorResponse "Unauthorized - Wrong credentials"
// @Router /login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req, "login"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !h.matches(req) {
			h.logger.Warn().Str("username", req.Username).Msg("Rejected admin login")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		token, expiresAt, err := h.tokens.CreateToken(req.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign token", err))
			return
		}

		h.logger.Info().Str("username", req.Username).Msg("Admin logged in")
		h.responder.WriteJSON(w, LoginResponse{Token: token, ExpiresAt: expiresAt})
	}
}

func (h authHandler) matches(req LoginRequest) bool {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.credentials.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.credentials.Password)) == 1
	return userOK && passOK
}
