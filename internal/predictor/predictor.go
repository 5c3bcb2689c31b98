package predictor

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/ratings"
)

// TeamInput is one side's pre-game state. Averages are per-game.
type TeamInput struct {
	TeamID       uuid.UUID
	Rating       float64
	AvgPointsFor float64
	AvgPointsVs  float64
}

// Predictor is a pure score model: deterministic given inputs, no side
// effects.
type Predictor struct {
	sport  SportParams
	params models.SimulationParams
}

// New creates a predictor from sport constants and tunable model params.
func New(sport SportParams, params models.SimulationParams) *Predictor {
	return &Predictor{sport: sport, params: params}
}

// Predict produces the predicted final score for both sides of one game.
//
// Each side's base is the average of its own regressed offense and the
// opponent's regressed defense. The rating gap then shifts points between
// the sides, half to each, clamped by the rating cap; home advantage splits
// the same way. The spread is optionally shrunk toward zero to curb
// overconfidence, and weatherImpact (already point-valued) adjusts the
// total.
func (p *Predictor) Predict(gameID uuid.UUID, home, away TeamInput, weatherImpact float64) models.PredictionRecord {
	homeOff := p.regress(home.AvgPointsFor)
	homeDef := p.regress(home.AvgPointsVs)
	awayOff := p.regress(away.AvgPointsFor)
	awayDef := p.regress(away.AvgPointsVs)

	homeBase := (homeOff + awayDef) / 2
	awayBase := (awayOff + homeDef) / 2

	adj := (home.Rating - away.Rating) * p.params.RatingToPoints / 2
	if p.params.RatingCap > 0 {
		half := p.params.RatingCap / 2
		adj = math.Max(-half, math.Min(half, adj))
	}

	homeScore := homeBase + adj + p.params.HomeAdvantage/2
	awayScore := awayBase - adj - p.params.HomeAdvantage/2

	spread := awayScore - homeScore
	if p.params.SpreadShrinkage > 0 {
		shrunk := spread * (1 - p.params.SpreadShrinkage)
		mid := (homeScore + awayScore) / 2
		homeScore = mid - shrunk/2
		awayScore = mid + shrunk/2
	}

	total := homeScore + awayScore + weatherImpact*p.params.WeatherCoeff
	mid := total / 2
	spread = awayScore - homeScore

	homeScore = RoundTo(mid-spread/2, p.sport.Granularity)
	awayScore = RoundTo(mid+spread/2, p.sport.Granularity)

	rec := models.PredictionRecord{
		GameID:      gameID,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		Spread:      awayScore - homeScore,
		Total:       homeScore + awayScore,
		HomeWinProb: ratings.WinProbability(home.Rating, away.Rating, p.sport.ProbHomeAdvantage),
		PredictedAt: time.Now().UTC(),
	}
	return rec
}

func (p *Predictor) regress(avg float64) float64 {
	r := p.params.StatsRegression
	return avg*(1-r) + p.sport.LeagueAvgPoints*r
}
