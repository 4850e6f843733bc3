// Package main provides the entry point for the race night scoring server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/race-night/internal/api"
	"github.com/yourusername/race-night/internal/auth"
	"github.com/yourusername/race-night/internal/config"
	"github.com/yourusername/race-night/internal/database"
	"github.com/yourusername/race-night/internal/health"
	"github.com/yourusername/race-night/internal/logger"
	"github.com/yourusername/race-night/internal/metrics"
	"github.com/yourusername/race-night/internal/repository"
	"github.com/yourusername/race-night/internal/scheduler"
	"github.com/yourusername/race-night/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Race night scoring server",
	Long:  `Runs the championship night scoring API, record tracker and maintenance jobs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("race-night server %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Race night scoring server starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	notifier := service.NewRecordNotifier(&cfg.Records, appLog)
	rosterSvc := service.NewRosterService(
		repos.Player,
		repos.Circuit,
		repos.Game,
		time.Duration(cfg.Game.RosterCacheSeconds)*time.Second,
		appLog,
	)
	gameSvc := service.NewGameService(repos.Game, repos.Circuit, notifier, &cfg.Game, appLog)
	pinVerifier := auth.NewPINVerifier(repos.Settings, &cfg.Auth, appLog)

	metrics.InitRegistry()

	// Maintenance jobs
	sched := scheduler.NewScheduler(repos.Game, gameSvc, appLog)
	if cfg.Jobs.StaleGameArchiveCron != "" {
		maxAge := time.Duration(cfg.Jobs.StaleGameMaxAgeHours) * time.Hour
		if err := sched.ScheduleStaleGameArchiving(cfg.Jobs.StaleGameArchiveCron, maxAge); err != nil {
			return fmt.Errorf("failed to schedule stale game archiving: %w", err)
		}
	}
	if cfg.Jobs.RecordAuditCron != "" {
		if err := sched.ScheduleRecordAudit(cfg.Jobs.RecordAuditCron); err != nil {
			return fmt.Errorf("failed to schedule record audit: %w", err)
		}
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Failed to stop scheduler")
		}
	}()

	// Health endpoints
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Logger:      appLog,
		DB:          db,
		Games:       repos.Game,
	})
	go func() {
		if err := healthServer.Start(ctx); err != nil {
			appLog.WithError(err).Error("Health server stopped")
		}
	}()

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: metricsMux,
		}
		go func() {
			appLog.WithField("addr", metricsServer.Addr).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server stopped")
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	apiServer := api.NewServer(&cfg.Server, rosterSvc, gameSvc, pinVerifier, appLog)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		appLog.WithField("signal", sig).Info("Shutdown signal received")
		cancel()
	}()

	healthServer.SetReady(true)

	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("API server failed: %w", err)
	}

	healthServer.SetReady(false)
	if err := healthServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Health server shutdown error")
	}

	appLog.Info("Server stopped")
	return nil
}
