package optimizer

import (
	"math"

	"github.com/yourusername/sharpline/internal/models"
)

// Tolerances define per-field closeness for the near-duplicate filter. Two
// parameter sets within tolerance on every field are considered the same
// configuration.
type Tolerances struct {
	RatingToPoints  float64
	HomeAdvantage   float64
	SpreadShrinkage float64
	RatingCap       float64
	MinSpread       float64
	MaxSpread       float64
	StatsRegression float64
	WeatherCoeff    float64
}

// DefaultTolerances are calibrated so that near-identical variants of a top
// configuration collapse to one entry while genuinely different settings
// survive.
func DefaultTolerances() Tolerances {
	return Tolerances{
		RatingToPoints:  0.25,
		HomeAdvantage:   0.25,
		SpreadShrinkage: 0.02,
		RatingCap:       0.5,
		MinSpread:       0.5,
		MaxSpread:       0.5,
		StatsRegression: 0.02,
		WeatherCoeff:    0.05,
	}
}

// Within reports whether a and b are within tolerance on every field.
func (t Tolerances) Within(a, b models.SimulationParams) bool {
	return near(a.RatingToPoints, b.RatingToPoints, t.RatingToPoints) &&
		near(a.HomeAdvantage, b.HomeAdvantage, t.HomeAdvantage) &&
		near(a.SpreadShrinkage, b.SpreadShrinkage, t.SpreadShrinkage) &&
		near(a.RatingCap, b.RatingCap, t.RatingCap) &&
		near(a.MinSpread, b.MinSpread, t.MinSpread) &&
		near(a.MaxSpread, b.MaxSpread, t.MaxSpread) &&
		near(a.StatsRegression, b.StatsRegression, t.StatsRegression) &&
		near(a.WeatherCoeff, b.WeatherCoeff, t.WeatherCoeff)
}

func near(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// FilterNearDuplicates walks an already ranked slice and drops any result
// whose parameters are within tolerance of an earlier-kept one, keeping the
// candidate list diverse rather than many variants of one winner.
func FilterNearDuplicates(ranked []models.SimulationResult, t Tolerances) []models.SimulationResult {
	kept := make([]models.SimulationResult, 0, len(ranked))
	for _, candidate := range ranked {
		duplicate := false
		for _, existing := range kept {
			if t.Within(candidate.Params, existing.Params) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, candidate)
		}
	}
	return kept
}
