package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "dispatch",
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
	})

	gormDB, err := cmd.OpenDatabase(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	root, err := cmd.NewCompositionRoot(cfg, gormDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build composition root")
	}
	defer root.Close()

	jobManager := jobs.NewJobManager(root.SweepHandler(), cfg.Dispatch.SweepSchedule, log)
	if err := jobManager.StartAll(); err != nil {
		log.Fatal().Err(err).Msg("failed to start background jobs")
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	root.HTTPServer().RegisterRoutes(e)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", cfg.HTTP.Port)
		log.Info().Str("address", address).Msg("http server starting")
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}
