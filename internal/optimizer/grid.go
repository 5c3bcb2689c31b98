// Package optimizer searches the model parameter space by replaying full
// seasons per candidate and ranking configurations by simulated profit.
package optimizer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/yourusername/sharpline/internal/models"
)

// Grid declares candidate value lists per parameter. The search space is
// the Cartesian product; an empty list means the baseline value stands.
// Extra carries hand-picked combinations appended to the product.
type Grid struct {
	Baseline models.SimulationParams

	RatingToPoints  []float64
	HomeAdvantage   []float64
	SpreadShrinkage []float64
	RatingCap       []float64
	MinSpread       []float64
	MaxSpread       []float64
	StatsRegression []float64
	WeatherCoeff    []float64

	Extra []models.SimulationParams
}

// Candidates expands the grid into concrete parameter sets.
func (g Grid) Candidates() []models.SimulationParams {
	out := []models.SimulationParams{g.Baseline}

	out = expand(out, orBaseline(g.RatingToPoints, g.Baseline.RatingToPoints), func(p *models.SimulationParams, v float64) { p.RatingToPoints = v })
	out = expand(out, orBaseline(g.HomeAdvantage, g.Baseline.HomeAdvantage), func(p *models.SimulationParams, v float64) { p.HomeAdvantage = v })
	out = expand(out, orBaseline(g.SpreadShrinkage, g.Baseline.SpreadShrinkage), func(p *models.SimulationParams, v float64) { p.SpreadShrinkage = v })
	out = expand(out, orBaseline(g.RatingCap, g.Baseline.RatingCap), func(p *models.SimulationParams, v float64) { p.RatingCap = v })
	out = expand(out, orBaseline(g.MinSpread, g.Baseline.MinSpread), func(p *models.SimulationParams, v float64) { p.MinSpread = v })
	out = expand(out, orBaseline(g.MaxSpread, g.Baseline.MaxSpread), func(p *models.SimulationParams, v float64) { p.MaxSpread = v })
	out = expand(out, orBaseline(g.StatsRegression, g.Baseline.StatsRegression), func(p *models.SimulationParams, v float64) { p.StatsRegression = v })
	out = expand(out, orBaseline(g.WeatherCoeff, g.Baseline.WeatherCoeff), func(p *models.SimulationParams, v float64) { p.WeatherCoeff = v })

	out = append(out, g.Extra...)
	return dedupeExact(out)
}

func expand(current []models.SimulationParams, values []float64, set func(*models.SimulationParams, float64)) []models.SimulationParams {
	next := make([]models.SimulationParams, 0, len(current)*len(values))
	for _, base := range current {
		for _, v := range values {
			p := base
			set(&p, v)
			next = append(next, p)
		}
	}
	return next
}

func orBaseline(values []float64, baseline float64) []float64 {
	if len(values) == 0 {
		return []float64{baseline}
	}
	return values
}

func dedupeExact(params []models.SimulationParams) []models.SimulationParams {
	seen := make(map[string]struct{}, len(params))
	out := params[:0]
	for _, p := range params {
		h := HashParams(p)
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, p)
	}
	return out
}

// DeepSearchGrid builds a refinement grid around a prior winner: tight
// candidate ranges centered on each winning value.
func DeepSearchGrid(winner models.SimulationParams) Grid {
	return Grid{
		Baseline:        winner,
		RatingToPoints:  around(winner.RatingToPoints, 0.25, true),
		HomeAdvantage:   around(winner.HomeAdvantage, 0.5, false),
		SpreadShrinkage: around(winner.SpreadShrinkage, 0.05, true),
		StatsRegression: around(winner.StatsRegression, 0.05, true),
	}
}

func around(center, step float64, nonNegative bool) []float64 {
	values := []float64{center - step, center, center + step}
	if !nonNegative {
		return values
	}
	out := values[:0]
	for _, v := range values {
		if v >= 0 {
			out = append(out, v)
		}
	}
	return out
}

// HashParams creates a stable hash of a parameter set, used for trial
// memoization and exact-duplicate elimination.
func HashParams(p models.SimulationParams) string {
	data, _ := json.Marshal(p)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
