package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRating is the rating assigned to a team with no history this run.
const DefaultRating = 1500.0

// Team represents a team within one sport/season.
type Team struct {
	ID            uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Sport         string    `db:"sport" json:"sport" validate:"required,sport"`
	Season        int       `db:"season" json:"season" validate:"required,gt=0"`
	Abbreviation  string    `db:"abbreviation" json:"abbreviation" validate:"required"`
	Name          string    `db:"name" json:"name" validate:"required"`
	Rating        float64   `db:"rating" json:"rating"`
	PointsFor     float64   `db:"points_for" json:"points_for" validate:"gte=0"`
	PointsAgainst float64   `db:"points_against" json:"points_against" validate:"gte=0"`
	GamesPlayed   int       `db:"games_played" json:"games_played" validate:"gte=0"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// AvgPointsFor returns the per-game scoring average, or fallback when the
// team has not played yet.
func (t *Team) AvgPointsFor(fallback float64) float64 {
	if t.GamesPlayed == 0 {
		return fallback
	}
	return t.PointsFor / float64(t.GamesPlayed)
}

// AvgPointsAgainst returns the per-game points-allowed average, or fallback
// when the team has not played yet.
func (t *Team) AvgPointsAgainst(fallback float64) float64 {
	if t.GamesPlayed == 0 {
		return fallback
	}
	return t.PointsAgainst / float64(t.GamesPlayed)
}
