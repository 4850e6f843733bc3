package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/race-night/internal/database"
	"github.com/yourusername/race-night/internal/models"
)

const circuitColumns = `
	id, name, image_url,
	historical_best_lap, best_lap_holder_id, historical_best_lap_date,
	historical_best_average, best_average_holder_id, historical_best_average_date,
	created_at, updated_at
`

// PostgresCircuitRepository implements CircuitRepository for PostgreSQL
type PostgresCircuitRepository struct {
	db *database.DB
}

// NewPostgresCircuitRepository creates a new circuit repository
func NewPostgresCircuitRepository(db *database.DB) CircuitRepository {
	return &PostgresCircuitRepository{db: db}
}

func scanCircuit(row pgx.Row) (*models.Circuit, error) {
	circuit := &models.Circuit{}
	err := row.Scan(
		&circuit.ID, &circuit.Name, &circuit.ImageURL,
		&circuit.HistoricalBestLap, &circuit.BestLapHolderID, &circuit.HistoricalBestLapDate,
		&circuit.HistoricalBestAverage, &circuit.BestAverageHolderID, &circuit.HistoricalBestAverageDate,
		&circuit.CreatedAt, &circuit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return circuit, nil
}

// Create inserts a new circuit
func (r *PostgresCircuitRepository) Create(ctx context.Context, circuit *models.Circuit) error {
	query := `
		INSERT INTO circuits (id, name, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.db.GetPool().QueryRow(ctx, query,
		circuit.ID, circuit.Name, circuit.ImageURL,
	).Scan(&circuit.CreatedAt, &circuit.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert circuit: %w", err)
	}

	return nil
}

// GetByID retrieves a circuit by ID
func (r *PostgresCircuitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error) {
	query := `SELECT ` + circuitColumns + ` FROM circuits WHERE id = $1`

	circuit, err := scanCircuit(r.db.GetPool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query circuit: %w", err)
	}

	return circuit, nil
}

// List retrieves all circuits ordered by name
func (r *PostgresCircuitRepository) List(ctx context.Context) ([]*models.Circuit, error) {
	query := `SELECT ` + circuitColumns + ` FROM circuits ORDER BY name ASC`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query circuits: %w", err)
	}
	defer rows.Close()

	var circuits []*models.Circuit
	for rows.Next() {
		circuit, err := scanCircuit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan circuit: %w", err)
		}
		circuits = append(circuits, circuit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating circuits: %w", err)
	}

	return circuits, nil
}

// Update updates a circuit's name and image
func (r *PostgresCircuitRepository) Update(ctx context.Context, circuit *models.Circuit) error {
	query := `
		UPDATE circuits SET
			name = $2, image_url = $3, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, circuit.ID, circuit.Name, circuit.ImageURL)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateKey
		}
		return fmt.Errorf("failed to update circuit: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// UpdateLapRecord overwrites the all-time best lap. The guard clause keeps
// the record monotone even if two sessions race each other on the write.
func (r *PostgresCircuitRepository) UpdateLapRecord(ctx context.Context, id uuid.UUID, bestLap int64, holderID uuid.UUID, at time.Time) error {
	query := `
		UPDATE circuits SET
			historical_best_lap = $2,
			best_lap_holder_id = $3,
			historical_best_lap_date = $4,
			updated_at = NOW()
		WHERE id = $1
		  AND (historical_best_lap IS NULL OR historical_best_lap > $2)
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id, bestLap, holderID, at)
	if err != nil {
		return fmt.Errorf("failed to update lap record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// UpdateAverageRecord overwrites the all-time best turn average.
func (r *PostgresCircuitRepository) UpdateAverageRecord(ctx context.Context, id uuid.UUID, bestAverage int64, holderID uuid.UUID, at time.Time) error {
	query := `
		UPDATE circuits SET
			historical_best_average = $2,
			best_average_holder_id = $3,
			historical_best_average_date = $4,
			updated_at = NOW()
		WHERE id = $1
		  AND (historical_best_average IS NULL OR historical_best_average > $2)
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id, bestAverage, holderID, at)
	if err != nil {
		return fmt.Errorf("failed to update average record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete deletes a circuit
func (r *PostgresCircuitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM circuits
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete circuit: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
