package repository

import (
	"fmt"

	"github.com/yourusername/race-night/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Player   PlayerRepository
	Circuit  CircuitRepository
	Game     GameRepository
	Settings SettingsRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Player:   NewPostgresPlayerRepository(db),
		Circuit:  NewPostgresCircuitRepository(db),
		Game:     NewPostgresGameRepository(db),
		Settings: NewPostgresSettingsRepository(db),
	}, nil
}
