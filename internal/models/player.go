package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a championship-night driver in the roster
type Player struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required"`
	Name      string    `db:"name" json:"name" validate:"required,min=1,max=50"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
