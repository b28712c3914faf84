package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/api"
	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
	"github.com/clinicdesk/clinic-scheduling/internal/config"
)

var version = "dev"

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api-server").Logger()
	logger.Info().Str("version", version).Msg("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load error")
	}
	if cfg.Env == "dev" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	logger.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTPPort).
		Str("roster_path", cfg.RosterPath).
		Msg("configuration loaded")

	roster, err := clinic.LoadRosterFile(cfg.RosterPath)
	if err != nil {
		// LoadRoster keeps the good lines; malformed ones only cost a warning.
		if roster == nil {
			logger.Fatal().Err(err).Msg("roster load error")
		}
		logger.Warn().Err(err).Msg("roster loaded with skipped lines")
	}
	logger.Info().
		Int("doctors", len(roster.Doctors)).
		Int("technicians", len(roster.Technicians)).
		Msg("roster loaded")

	sched := clinic.NewScheduler(clinic.NewRotation(roster.Technicians), nil)

	router := api.NewRouter(api.RouterConfig{
		Scheduler: sched,
		Roster:    roster,
		Env:       cfg.Env,
		Version:   version,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	logger.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
