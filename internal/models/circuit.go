package models

import (
	"time"

	"github.com/google/uuid"
)

// Circuit represents a racetrack and its all-time records.
// Record fields are nil until a record has been set; they only ever
// decrease and are updated by the record tracker, at most once per
// record-check pass.
type Circuit struct {
	ID                        uuid.UUID  `db:"id" json:"id" validate:"required"`
	Name                      string     `db:"name" json:"name" validate:"required,min=1,max=50"`
	ImageURL                  string     `db:"image_url" json:"imageUrl" validate:"omitempty,url"`
	HistoricalBestLap         *int64     `db:"historical_best_lap" json:"historicalBestLap"`
	BestLapHolderID           *uuid.UUID `db:"best_lap_holder_id" json:"bestLapHolderId"`
	HistoricalBestLapDate     *time.Time `db:"historical_best_lap_date" json:"historicalBestLapDate"`
	HistoricalBestAverage     *int64     `db:"historical_best_average" json:"historicalBestAverage"`
	BestAverageHolderID       *uuid.UUID `db:"best_average_holder_id" json:"bestAverageHolderId"`
	HistoricalBestAverageDate *time.Time `db:"historical_best_average_date" json:"historicalBestAverageDate"`
	CreatedAt                 time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt                 time.Time  `db:"updated_at" json:"updatedAt"`
}

// HasLapRecord reports whether the circuit has an all-time best lap
func (c *Circuit) HasLapRecord() bool {
	return c.HistoricalBestLap != nil
}

// HasAverageRecord reports whether the circuit has an all-time best average
func (c *Circuit) HasAverageRecord() bool {
	return c.HistoricalBestAverage != nil
}
