package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/race-night/internal/database"
	"github.com/yourusername/race-night/internal/models"
)

// PostgresSettingsRepository implements SettingsRepository for PostgreSQL
type PostgresSettingsRepository struct {
	db *database.DB
}

// NewPostgresSettingsRepository creates a new settings repository
func NewPostgresSettingsRepository(db *database.DB) SettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// Get retrieves the settings row, creating it with the default PIN on first use
func (r *PostgresSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	query := `
		SELECT id, pin, updated_at
		FROM settings
		WHERE id = $1
	`

	settings := &models.Settings{}
	err := r.db.GetPool().QueryRow(ctx, query, models.SettingsID).Scan(
		&settings.ID, &settings.PIN, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.createDefault(ctx)
		}
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	return settings, nil
}

func (r *PostgresSettingsRepository) createDefault(ctx context.Context) (*models.Settings, error) {
	query := `
		INSERT INTO settings (id, pin, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO NOTHING
		RETURNING id, pin, updated_at
	`

	settings := &models.Settings{}
	err := r.db.GetPool().QueryRow(ctx, query, models.SettingsID, models.DefaultPIN).Scan(
		&settings.ID, &settings.PIN, &settings.UpdatedAt,
	)
	if err != nil {
		// A concurrent caller won the insert; read what it wrote.
		if errors.Is(err, pgx.ErrNoRows) {
			return r.Get(ctx)
		}
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	return settings, nil
}

// UpdatePIN rotates the admin PIN
func (r *PostgresSettingsRepository) UpdatePIN(ctx context.Context, pin string) error {
	query := `
		INSERT INTO settings (id, pin, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET pin = EXCLUDED.pin, updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query, models.SettingsID, pin)
	if err != nil {
		return fmt.Errorf("failed to update PIN: %w", err)
	}

	return nil
}
