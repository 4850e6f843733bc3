// Package main provides a CLI tool for seeding the roster with sample data.
package main

import (
	"context"
	"errors"
	"flag"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-night/internal/config"
	"github.com/yourusername/race-night/internal/database"
	"github.com/yourusername/race-night/internal/models"
	"github.com/yourusername/race-night/internal/repository"
)

var defaultPlayers = []string{"Alex", "Sam", "Jordan", "Casey"}

var defaultCircuits = []string{
	"Silver Hairpin",
	"Thunder Valley",
	"Coastal Loop",
	"Midnight Oval",
	"Summit Climb",
}

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		players    = flag.String("players", "", "Comma-separated player names (defaults to a sample roster)")
		circuits   = flag.String("circuits", "", "Comma-separated circuit names (defaults to a sample calendar)")
	)
	flag.Parse()

	logger := logrus.New()
	ctx := context.Background()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load config")
	}

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize repositories")
	}

	playerNames := splitOrDefault(*players, defaultPlayers)
	circuitNames := splitOrDefault(*circuits, defaultCircuits)

	created := 0
	for _, name := range playerNames {
		player := &models.Player{ID: uuid.New(), Name: name}
		if err := repos.Player.Create(ctx, player); err != nil {
			if errors.Is(err, models.ErrDuplicateKey) {
				logger.WithField("name", name).Debug("Player already exists, skipping")
				continue
			}
			logger.WithError(err).WithField("name", name).Fatal("Failed to create player")
		}
		created++
	}
	logger.WithField("count", created).Info("Players seeded")

	created = 0
	for _, name := range circuitNames {
		circuit := &models.Circuit{ID: uuid.New(), Name: name}
		if err := repos.Circuit.Create(ctx, circuit); err != nil {
			if errors.Is(err, models.ErrDuplicateKey) {
				logger.WithField("name", name).Debug("Circuit already exists, skipping")
				continue
			}
			logger.WithError(err).WithField("name", name).Fatal("Failed to create circuit")
		}
		created++
	}
	logger.WithField("count", created).Info("Circuits seeded")
}

func splitOrDefault(raw string, fallback []string) []string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
