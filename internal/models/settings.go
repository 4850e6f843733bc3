package models

import "time"

// SettingsID is the primary key of the single settings row
const SettingsID = "singleton"

// DefaultPIN is written when no settings row exists yet
const DefaultPIN = "2024"

// Settings holds the admin PIN gating state-mutating operations
type Settings struct {
	ID        string    `db:"id" json:"id"`
	PIN       string    `db:"pin" json:"pin" validate:"required,len=4,numeric"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
