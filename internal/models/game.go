package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Game status values
const (
	GameStatusActive    = "ACTIVE"
	GameStatusCompleted = "COMPLETED"
)

// Game represents a persisted championship night. The full engine state is
// stored as a JSON snapshot; saves are whole-snapshot create-or-replace.
type Game struct {
	ID        uuid.UUID       `db:"id" json:"id" validate:"required"`
	State     json.RawMessage `db:"state" json:"state" validate:"required"`
	Status    string          `db:"status" json:"status" validate:"oneof=ACTIVE COMPLETED"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// IsActive reports whether this is the night's live game
func (g *Game) IsActive() bool {
	return g.Status == GameStatusActive
}
