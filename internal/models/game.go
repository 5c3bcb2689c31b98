package models

import (
	"time"

	"github.com/google/uuid"
)

// Game status values.
const (
	GameStatusScheduled = "scheduled"
	GameStatusFinal     = "final"
)

// Game represents a single matchup. Immutable once status is final.
type Game struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Sport      string    `db:"sport" json:"sport" validate:"required,sport"`
	Season     int       `db:"season" json:"season" validate:"required,gt=0"`
	HomeTeamID uuid.UUID `db:"home_team_id" json:"home_team_id" validate:"required,uuid4"`
	AwayTeamID uuid.UUID `db:"away_team_id" json:"away_team_id" validate:"required,uuid4"`
	Kickoff    time.Time `db:"kickoff" json:"kickoff" validate:"required"`
	Status     string    `db:"status" json:"status" validate:"oneof=scheduled final"`
	HomeScore  *int      `db:"home_score" json:"home_score"`
	AwayScore  *int      `db:"away_score" json:"away_score"`
	// WeatherImpact is a point-valued total adjustment supplied by the
	// weather collaborator for outdoor games. Zero for domes and unknowns.
	WeatherImpact float64   `db:"weather_impact" json:"weather_impact"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// IsFinal reports whether the game has completed with both scores present.
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal && g.HomeScore != nil && g.AwayScore != nil
}

// Margin returns home score minus away score. Only valid for final games.
func (g *Game) Margin() int {
	if !g.IsFinal() {
		return 0
	}
	return *g.HomeScore - *g.AwayScore
}

// Total returns the combined final score. Only valid for final games.
func (g *Game) Total() int {
	if !g.IsFinal() {
		return 0
	}
	return *g.HomeScore + *g.AwayScore
}

// IsTie reports whether the game finished level.
func (g *Game) IsTie() bool {
	return g.IsFinal() && *g.HomeScore == *g.AwayScore
}
