package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/race-night/internal/models"
)

// PlayerRepository defines operations for the driver roster
type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CircuitRepository defines operations for circuits and their all-time records
type CircuitRepository interface {
	Create(ctx context.Context, circuit *models.Circuit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error)
	List(ctx context.Context) ([]*models.Circuit, error)
	Update(ctx context.Context, circuit *models.Circuit) error
	UpdateLapRecord(ctx context.Context, id uuid.UUID, bestLap int64, holderID uuid.UUID, at time.Time) error
	UpdateAverageRecord(ctx context.Context, id uuid.UUID, bestAverage int64, holderID uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GameRepository defines operations for persisted championship nights
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetActive(ctx context.Context) (*models.Game, error)
	ListCompleted(ctx context.Context, limit int) ([]*models.Game, error)
	UpdateState(ctx context.Context, id uuid.UUID, state json.RawMessage) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	CompleteActiveGames(ctx context.Context) (int64, error)
	CompleteStaleGames(ctx context.Context, olderThan time.Time) (int64, error)
}

// SettingsRepository defines operations for the single admin settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	UpdatePIN(ctx context.Context, pin string) error
}
