// Package predictor turns team ratings and scoring tendencies into
// predicted final scores, win probabilities and confidence tiers.
package predictor

import (
	"math"

	"github.com/yourusername/sharpline/internal/models"
)

// SportParams bundles the per-sport constants the model needs. One formula,
// parameterized per league.
type SportParams struct {
	Code string
	// LeagueAvgPoints is the league-average points per team per game.
	LeagueAvgPoints float64
	// Granularity is the rounding step for predicted scores: 0.1 for
	// basketball, 0.5 for football and hockey lines.
	Granularity float64
	// BaselineTotal is the fallback O/U line when no market total exists.
	BaselineTotal float64
	// EloK is the rating updater K factor.
	EloK float64
	// EloHomeAdvantage is in rating units, used for the rating update.
	EloHomeAdvantage float64
	// ProbHomeAdvantage is in rating units, calibrated separately for win
	// probability rather than point margin.
	ProbHomeAdvantage float64
	// MarginScaling toggles margin-of-victory scaling of rating updates.
	MarginScaling bool
	// TiesAllowed controls whether tied finals grade on the moneyline.
	TiesAllowed bool
	// RegulationMinutes is used by the pace projector.
	RegulationMinutes float64

	// Edge thresholds mapping to high/medium tiers per market. Below the
	// medium threshold is low.
	SpreadEdgeHigh   float64
	SpreadEdgeMedium float64
	TotalEdgeHigh    float64
	TotalEdgeMedium  float64
	MLEdgeHigh       float64
	MLEdgeMedium     float64
}

// Sport codes.
const (
	SportNFL = "nfl"
	SportNBA = "nba"
	SportNHL = "nhl"
)

var sportDefaults = map[string]SportParams{
	SportNFL: {
		Code:              SportNFL,
		LeagueAvgPoints:   22.0,
		Granularity:       0.5,
		BaselineTotal:     44.0,
		EloK:              20.0,
		EloHomeAdvantage:  48.0,
		ProbHomeAdvantage: 65.0,
		MarginScaling:     true,
		TiesAllowed:       false,
		RegulationMinutes: 60.0,
		SpreadEdgeHigh:    4.0,
		SpreadEdgeMedium:  2.0,
		TotalEdgeHigh:     5.0,
		TotalEdgeMedium:   2.5,
		MLEdgeHigh:        15.0,
		MLEdgeMedium:      7.5,
	},
	SportNBA: {
		Code:              SportNBA,
		LeagueAvgPoints:   112.0,
		Granularity:       0.1,
		BaselineTotal:     224.0,
		EloK:              16.0,
		EloHomeAdvantage:  70.0,
		ProbHomeAdvantage: 80.0,
		MarginScaling:     true,
		TiesAllowed:       false,
		RegulationMinutes: 48.0,
		SpreadEdgeHigh:    6.0,
		SpreadEdgeMedium:  3.0,
		TotalEdgeHigh:     8.0,
		TotalEdgeMedium:   4.0,
		MLEdgeHigh:        15.0,
		MLEdgeMedium:      7.5,
	},
	SportNHL: {
		Code:              SportNHL,
		LeagueAvgPoints:   3.0,
		Granularity:       0.5,
		BaselineTotal:     6.0,
		EloK:              8.0,
		EloHomeAdvantage:  33.0,
		ProbHomeAdvantage: 40.0,
		MarginScaling:     false,
		TiesAllowed:       false,
		RegulationMinutes: 60.0,
		SpreadEdgeHigh:    0.8,
		SpreadEdgeMedium:  0.4,
		TotalEdgeHigh:     0.7,
		TotalEdgeMedium:   0.35,
		MLEdgeHigh:        12.0,
		MLEdgeMedium:      6.0,
	},
}

// SportParamsFor returns the built-in constants for a sport code.
func SportParamsFor(code string) (SportParams, error) {
	p, ok := sportDefaults[code]
	if !ok {
		return SportParams{}, models.ErrUnknownSport
	}
	return p, nil
}

// RoundTo rounds v to the nearest multiple of step. Step <= 0 returns v.
func RoundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}
