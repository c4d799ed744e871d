package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpadapter "github.com/atlasrisk/varscope-backend/internal/adapter/http"
	"github.com/atlasrisk/varscope-backend/internal/adapter/repository/memory"
	"github.com/atlasrisk/varscope-backend/internal/adapter/repository/postgres"
	"github.com/atlasrisk/varscope-backend/internal/config"
	"github.com/atlasrisk/varscope-backend/internal/domain"
	"github.com/atlasrisk/varscope-backend/internal/usecase/dashboard"
	"github.com/atlasrisk/varscope-backend/internal/usecase/seeder"
)

const (
	storeTimeout    = 5 * time.Second
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger = logger.With().Str("app", cfg.AppName).Logger()

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := buildStore(startupCtx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize store")
	}

	seed := seeder.NewSeeder(store, domain.DemoCatalog(), cfg.SnapshotDays, logger)
	if err := seed.Seed(startupCtx, time.Now()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed dataset")
	}

	server := httpadapter.NewServer(cfg.HTTPAddr, dashboard.NewService(store), cfg.CORSOrigins, logger)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(server, logger)
}

// buildStore selects PostgreSQL when a database URL is configured, otherwise
// the in-memory store
func buildStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (domain.RiskStore, error) {
	if cfg.DatabaseURL == "" {
		logger.Info().Msg("no database configured, using in-memory store")
		return memory.NewStore(), nil
	}

	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	logger.Info().Msg("connected to postgres")
	return postgres.NewRiskStore(db, storeTimeout), nil
}

func waitForShutdown(server *httpadapter.Server, logger zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
}
