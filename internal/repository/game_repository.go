package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/race-night/internal/database"
	"github.com/yourusername/race-night/internal/models"
)

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Create inserts a new game snapshot
func (r *PostgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, state, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.GetPool().QueryRow(ctx, query,
		game.ID, game.State, game.Status,
	).Scan(&game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `
		SELECT id, state, status, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.State, &game.Status, &game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query game: %w", err)
	}

	return game, nil
}

// GetActive retrieves the night's live game, newest first if several exist
func (r *PostgresGameRepository) GetActive(ctx context.Context) (*models.Game, error) {
	query := `
		SELECT id, state, status, created_at, updated_at
		FROM games
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, models.GameStatusActive).Scan(
		&game.ID, &game.State, &game.Status, &game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNoActiveGame
		}
		return nil, fmt.Errorf("failed to query active game: %w", err)
	}

	return game, nil
}

// ListCompleted retrieves finished games, newest first
func (r *PostgresGameRepository) ListCompleted(ctx context.Context, limit int) ([]*models.Game, error) {
	query := `
		SELECT id, state, status, created_at, updated_at
		FROM games
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, models.GameStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(&game.ID, &game.State, &game.Status, &game.CreatedAt, &game.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// UpdateState replaces the whole state snapshot of a game
func (r *PostgresGameRepository) UpdateState(ctx context.Context, id uuid.UUID, state json.RawMessage) error {
	query := `
		UPDATE games SET
			state = $2, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("failed to update game state: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// SetStatus updates a game's lifecycle status
func (r *PostgresGameRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE games SET
			status = $2, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// CompleteActiveGames marks every live game completed. Creating a new
// game calls this first so at most one game is ever active.
func (r *PostgresGameRepository) CompleteActiveGames(ctx context.Context) (int64, error) {
	query := `
		UPDATE games SET
			status = $1, updated_at = NOW()
		WHERE status = $2
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, models.GameStatusCompleted, models.GameStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to complete active games: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// CompleteStaleGames archives live games that have not been touched since the cutoff
func (r *PostgresGameRepository) CompleteStaleGames(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `
		UPDATE games SET
			status = $1, updated_at = NOW()
		WHERE status = $2 AND updated_at < $3
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, models.GameStatusCompleted, models.GameStatusActive, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to complete stale games: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
