package models

import "errors"

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrNoActiveGame = errors.New("no active game")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID format")
	ErrPlayerInUse  = errors.New("player is part of the active game")
	ErrCircuitInUse = errors.New("circuit is part of the active game")
	ErrInvalidPIN   = errors.New("invalid PIN")
)
