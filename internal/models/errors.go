package models

import "errors"

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID format")
	ErrUnknownSport = errors.New("unknown sport code")
	ErrGameNotFinal = errors.New("game is not final")
	ErrNoGames      = errors.New("no games to process")
)
