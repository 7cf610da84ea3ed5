package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pickscout/internal/api"
	"github.com/yourusername/pickscout/internal/config"
	"github.com/yourusername/pickscout/internal/database"
	"github.com/yourusername/pickscout/internal/health"
	"github.com/yourusername/pickscout/internal/metrics"
	"github.com/yourusername/pickscout/internal/repository"
)

var migrateOnStart bool

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply pending migrations before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateEnvironment(cfg); err != nil {
			return err
		}
		return runServer()
	},
}

func runServer() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"commit":      GitCommit,
		"environment": cfg.App.Environment,
	}).Info("PickScout API starting")

	if migrateOnStart {
		if err := database.MigrateUp(cfg.GetDatabaseDSN(), appLog); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	probes := health.NewServer(health.Config{
		ServiceName: "pickscout-api",
		Version:     Version,
		Commit:      GitCommit,
		Port:        cfg.Health.Port,
		Logger:      appLog,
		DB:          db,
		Checks: map[string]health.CheckFunc{
			"repositories": repos.Check,
		},
	})

	srv := api.New(api.Config{
		Server:      cfg.Server,
		Leaderboard: cfg.Leaderboard,
		Metrics:     cfg.Metrics,
		Logger:      appLog,
		Cappers:     repos.Capper,
		Picks:       repos.Pick,
		Profiles:    repos.User,
		Probes:      probes.Handler(),
	})

	if cfg.Health.Enabled {
		if err := probes.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	probes.SetReady(true)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	probes.SetReady(false)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Graceful shutdown failed")
		return err
	}
	cancel()

	appLog.Info("PickScout API stopped")
	return nil
}
