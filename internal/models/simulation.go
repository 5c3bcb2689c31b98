package models

import (
	"time"

	"github.com/google/uuid"
)

// SimulationParams is the tuple of model constants for one optimizer trial.
// Value object; compared by value in the near-duplicate filter.
type SimulationParams struct {
	RatingToPoints  float64 `json:"rating_to_points" validate:"gte=0"`
	HomeAdvantage   float64 `json:"home_advantage"`
	SpreadShrinkage float64 `json:"spread_shrinkage" validate:"gte=0,lte=1"`
	RatingCap       float64 `json:"rating_cap" validate:"gte=0"`
	MinSpread       float64 `json:"min_spread" validate:"gte=0"`
	MaxSpread       float64 `json:"max_spread" validate:"gte=0"`
	StatsRegression float64 `json:"stats_regression" validate:"gte=0,lte=1"`
	WeatherCoeff    float64 `json:"weather_coeff"`
}

// SimulationResult is one ranked optimizer trial.
// Invariant: Wins+Losses+Pushes == TotalGraded <= TotalGames.
type SimulationResult struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	Params      SimulationParams `db:"-" json:"params"`
	Wins        int              `db:"wins" json:"wins"`
	Losses      int              `db:"losses" json:"losses"`
	Pushes      int              `db:"pushes" json:"pushes"`
	TotalGames  int              `db:"total_games" json:"total_games"`
	TotalGraded int              `db:"total_graded" json:"total_graded"`
	WinPct      float64          `db:"win_pct" json:"win_pct"`
	// Profit assumes fixed -110 odds: wins x 100 - losses x 110.
	Profit    float64   `db:"profit" json:"profit"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WinPercentage returns wins over decided bets (pushes excluded), 0 when
// nothing was decided.
func WinPercentage(wins, losses int) float64 {
	decided := wins + losses
	if decided == 0 {
		return 0
	}
	return float64(wins) / float64(decided) * 100
}
