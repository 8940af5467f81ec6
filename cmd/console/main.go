// Package main provides the entry point for the hub console server.
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/galaxyops/hub-console/internal/api/handlers"
	"github.com/galaxyops/hub-console/internal/auth"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/secrets"
	"github.com/galaxyops/hub-console/internal/shutdown"
	pgstore "github.com/galaxyops/hub-console/internal/store/postgres"
	"github.com/galaxyops/hub-console/internal/tasks"
	"github.com/galaxyops/hub-console/pkg/config"
	"github.com/galaxyops/hub-console/pkg/logger"
	"github.com/galaxyops/hub-console/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel), cfg.LogJSON)

	store, err := pgstore.NewPostgresStore(pgstore.DefaultConfig(cfg.DatabaseDSN), log.Logger)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	hubClient := hub.NewClient(cfg.HubURL)
	if cfg.HubToken != "" {
		hubClient = hubClient.WithToken(cfg.HubToken)
	}

	modalPoller := tasks.NewPoller(hubClient, cfg.Polling.ModalInterval, log.Logger)
	passivePoller := tasks.NewPoller(hubClient, cfg.Polling.PassiveInterval, log.Logger)

	authService := auth.NewService(&auth.Config{
		JWTSecret:   []byte(cfg.JWTSecret),
		TokenExpiry: cfg.JWTExpiry,
	}, store, log.Logger)

	var cipher *secrets.Cipher
	if cfg.Credentials.AgePublicKey != "" || cfg.Credentials.AgePrivateKey != "" {
		cipher, err = secrets.NewCipher(&secrets.Config{
			AgePublicKey:  cfg.Credentials.AgePublicKey,
			AgePrivateKey: cfg.Credentials.AgePrivateKey,
		}, log.Logger)
		if err != nil {
			log.Error("failed to initialize credential cipher", "error", err)
			os.Exit(1)
		}
	}

	api := handlers.NewServer(hubClient, modalPoller, passivePoller, authService, store, cipher, log.Logger)

	r := api.Routes()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if ui.Available() {
		r.NotFound(ui.Handler().ServeHTTP)
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: r,
	}

	coordinator := shutdown.NewCoordinator(
		shutdown.WithTimeout(cfg.ShutdownTimeout),
		shutdown.WithLogger(log.Logger),
	)
	coordinator.Register(shutdown.NewCloserComponent("store", store))
	coordinator.Register(shutdown.NewFuncComponent("hub", func(context.Context) error {
		hubClient.CloseIdleConnections()
		return nil
	}))
	coordinator.Register(shutdown.NewHTTPServerComponent("http", srv))

	go func() {
		log.Info("starting hub console", "addr", cfg.ListenAddr(), "hub", cfg.HubURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			coordinator.Shutdown()
		}
	}()

	coordinator.WaitForSignal()
	coordinator.Wait()
	os.Exit(coordinator.ExitCode())
}
