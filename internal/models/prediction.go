package models

import (
	"time"

	"github.com/google/uuid"
)

// Confidence tiers derived from the edge between model and market.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// PredictionRecord is the pure output of the score predictor for one game.
// Never mutated after creation.
type PredictionRecord struct {
	GameID    uuid.UUID `db:"game_id" json:"game_id" validate:"required,uuid4"`
	HomeScore float64   `db:"home_score" json:"home_score"`
	AwayScore float64   `db:"away_score" json:"away_score"`
	// Spread is away minus home, matching the market convention:
	// negative means home favored.
	Spread      float64   `db:"spread" json:"spread"`
	Total       float64   `db:"total" json:"total"`
	HomeWinProb float64   `db:"home_win_prob" json:"home_win_prob" validate:"gte=0,lte=1"`
	PredictedAt time.Time `db:"predicted_at" json:"predicted_at"`

	// Read-only metadata for downstream consumers. Tiers never alter the
	// pick itself.
	SpreadTier    string `db:"spread_tier" json:"spread_tier,omitempty"`
	TotalTier     string `db:"total_tier" json:"total_tier,omitempty"`
	MoneylineTier string `db:"moneyline_tier" json:"moneyline_tier,omitempty"`
}

// FavorsHome reports whether the model has the home side winning outright.
func (p *PredictionRecord) FavorsHome() bool {
	return p.HomeWinProb > 0.5
}
