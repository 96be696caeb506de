package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
)

type authMiddleware struct {
	responder Responder
	tokens    *TokenManager
}

func newAuthMiddleware(tokens *TokenManager) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		tokens:    tokens,
	}
}

func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			m.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		username, err := m.tokens.CheckToken(token)
		if err != nil {
			m.responder.WriteError(w, errs.NewUnauthorizedError("invalid or expired token"))
			return
		}

		updatedReq := r.WithContext(ctxWithUsername(r.Context(), username))
		next.ServeHTTP(w, updatedReq)
	})
}

// statusResponseWriter remembers the status and body size a handler wrote
type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// recoverPanics turns a handler panic into a JSON 500 response
func recoverPanics(next http.Handler) http.Handler {
	logger := log.With().Str("handlerName", "recoverPanics").Logger()
	responder := NewResponder(logger)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := newStatusResponseWriter(w)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic")

			if !srw.wroteHeader {
				responder.WriteError(srw, fmt.Errorf("panic: %v", rec))
			}
		}()

		next.ServeHTTP(srw, r)
	})
}

// CORSCheckMiddleware checks if the request is blocked by CORS and returns a proper error
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// If no origin header, it's likely a same-origin request
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Check if origin is in allowed list
			allowed := false
			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					allowed = true
					break
				}
			}

			// If not allowed and it's a preflight request, return error
			if !allowed && r.Method == "OPTIONS" {
				responder := NewResponder(log.Logger)
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware handles CORS headers for allowed origins
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// requestLogger logs one line per request once the handler returns. Admin
// requests carry the username the auth middleware resolved.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, info := ctxWithRequestInfo(r.Context())
			srw := newStatusResponseWriter(w)

			next.ServeHTTP(srw, r.WithContext(ctx))

			var event *zerolog.Event
			switch {
			case srw.status >= http.StatusInternalServerError:
				event = logger.Error()
			case srw.status >= http.StatusBadRequest:
				event = logger.Warn()
			default:
				event = logger.Info()
			}

			if info.username != "" {
				event = event.Str("admin", info.username)
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", srw.status).
				Int("bytes", srw.bytes).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP Request")
		})
	}
}
