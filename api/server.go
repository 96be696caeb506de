package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-catalog-backend/catalog"
	"github.com/rpupo63/portfolio-catalog-backend/config"
	"github.com/rpupo63/portfolio-catalog-backend/services"
)

// Dependencies are the services the HTTP layer is built on
type Dependencies struct {
	Catalog     *catalog.Catalog
	Settings    *catalog.Settings
	Contact     *services.ContactNotifier
	Tokens      *TokenManager
	Credentials Credentials
	// Registry is served on /metrics. HTTP collectors are added to it.
	Registry *prometheus.Registry
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	if deps.Catalog == nil || deps.Settings == nil || deps.Contact == nil || deps.Tokens == nil {
		return Server{}, errors.New("api: missing dependency")
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(recoverPanics)
	chiRouter.Use(newHTTPMetrics(deps.Registry).middleware)

	handlers := initializeHandlers(deps)
	authMiddleware := newAuthMiddleware(deps.Tokens)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	chiRouter.Get("/healthz", healthHandler(deps.Catalog, router.startupTime))
	chiRouter.Method(http.MethodGet, "/metrics", metricsHandler(deps.Registry))

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// Run serves until ctx is cancelled, then shuts down within shutdownTimeout
func (s Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errChannel := make(chan error, 1)
	go s.Start(errChannel)

	select {
	case err := <-errChannel:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.ShutdownGracefully(shutdownTimeout)
	}
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
