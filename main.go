package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/portfolio-catalog-backend/api"
	"github.com/rpupo63/portfolio-catalog-backend/catalog"
	"github.com/rpupo63/portfolio-catalog-backend/config"
	"github.com/rpupo63/portfolio-catalog-backend/database"
	"github.com/rpupo63/portfolio-catalog-backend/services"
)

var errInterrupted = errors.New("interrupted")

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	setupLogging(cfg)

	if err := run(cfg); err != nil && !errors.Is(err, errInterrupted) {
		log.Fatal().Err(err).Msg("Server stopped")
	}
	log.Info().Msg("Server stopped")
}

func setupLogging(cfg map[string]string) {
	level, err := zerolog.ParseLevel(config.GetString(cfg, "LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func run(cfg map[string]string) error {
	ctx := context.Background()

	storeConfig := database.StoreConfigFromEnv(cfg)
	log.Info().Str("storeType", storeConfig.Type).Msg("Initializing app...")

	store, err := database.Open(ctx, storeConfig)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	db := database.New(store,
		database.WithProjectsKey(config.GetString(cfg, "PROJECTS_KEY", database.DefaultProjectsKey)),
		database.WithSettingsKey(config.GetString(cfg, "SETTINGS_KEY", database.DefaultSettingsKey)),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	projects, err := catalog.New(ctx, db.ProjectRepo(), catalog.WithMetrics(catalog.NewMetrics(registry)))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	settings := catalog.NewSettings(db.SettingsRepo())

	tokens, err := api.NewTokenManager(
		config.GetString(cfg, "JWT_SECRET", "change-me"),
		config.GetInt(cfg, "TOKEN_TTL_HOURS", 24),
	)
	if err != nil {
		return err
	}
	if config.GetString(cfg, "JWT_SECRET", "") == "" {
		log.Warn().Msg("JWT_SECRET is not set, using the built-in demo secret")
	}

	server, err := api.NewServer(cfg, api.Dependencies{
		Catalog:  projects,
		Settings: settings,
		Contact:  newContactNotifier(cfg, settings),
		Tokens:   tokens,
		Credentials: api.Credentials{
			Username: config.GetString(cfg, "ADMIN_USERNAME", "admin"),
			Password: config.GetString(cfg, "ADMIN_PASSWORD", "123456"),
		},
		Registry: registry,
	})
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx, 30*time.Second)
	})

	// Listen for interrupt signals to gracefully shutdown the server
	g.Go(func() error {
		return listenToInterrupt(gctx)
	})

	if fileStore, ok := store.(*database.FileStore); ok && config.GetBool(cfg, "WATCH_DATA_DIR", false) {
		g.Go(func() error {
			return fileStore.Watch(gctx, db.ProjectRepo().Key(), func() {
				if err := projects.Reload(gctx); err != nil {
					log.Error().Err(err).Msg("Failed to reload catalog after external change")
				}
			})
		})
	}

	return g.Wait()
}

// newContactNotifier sends contact messages through Resend when it is
// configured and only logs them otherwise.
func newContactNotifier(cfg map[string]string, settings *catalog.Settings) *services.ContactNotifier {
	mailer, err := services.NewMailerFromConfig(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Resend is not configured, contact messages will only be logged")
		return services.NewContactNotifier(nil, settings)
	}
	return services.NewContactNotifier(mailer, settings)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then returns an error so the group shuts down.
func listenToInterrupt(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		log.Info().Str("signal", sig.String()).Msg("Closing server")
		return fmt.Errorf("%w: %s", errInterrupted, sig)
	case <-ctx.Done():
		return nil
	}
}
