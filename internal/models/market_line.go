package models

import (
	"time"

	"github.com/google/uuid"
)

// MarketLine holds the book's numbers for one game. Spread is from the home
// team's perspective, negative meaning home favored. Either field may be
// absent; absence is a valid state.
type MarketLine struct {
	GameID     uuid.UUID  `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Spread     *float64   `db:"spread" json:"spread"`
	Total      *float64   `db:"total" json:"total"`
	OpenSpread *float64   `db:"open_spread" json:"open_spread"`
	OpenTotal  *float64   `db:"open_total" json:"open_total"`
	CapturedAt time.Time  `db:"captured_at" json:"captured_at" validate:"required"`
	LockedAt   *time.Time `db:"locked_at" json:"locked_at"`
}

// HasSpread reports whether a market spread was captured.
func (m *MarketLine) HasSpread() bool {
	return m != nil && m.Spread != nil
}

// HasTotal reports whether a market total was captured.
func (m *MarketLine) HasTotal() bool {
	return m != nil && m.Total != nil
}

// SpreadMovement returns close minus open spread, zero if either is missing.
func (m *MarketLine) SpreadMovement() float64 {
	if m == nil || m.Spread == nil || m.OpenSpread == nil {
		return 0
	}
	return *m.Spread - *m.OpenSpread
}

// TotalMovement returns close minus open total, zero if either is missing.
func (m *MarketLine) TotalMovement() float64 {
	if m == nil || m.Total == nil || m.OpenTotal == nil {
		return 0
	}
	return *m.Total - *m.OpenTotal
}
