package optimizer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sharpline/internal/backtest"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/predictor"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testInput(teams, weeks int) backtest.Input {
	ids := make([]uuid.UUID, teams)
	for i := range ids {
		ids[i] = uuid.New()
	}
	start := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	var games []*models.Game
	lines := map[uuid.UUID]*models.MarketLine{}
	for w := 0; w < weeks; w++ {
		for i := 0; i < teams; i += 2 {
			g := &models.Game{
				ID:         uuid.New(),
				Sport:      predictor.SportNFL,
				Season:     2024,
				HomeTeamID: ids[i],
				AwayTeamID: ids[i+1],
				Kickoff:    start.AddDate(0, 0, 7*w),
				Status:     models.GameStatusFinal,
				HomeScore:  intPtr(20 + (w*5+i*3)%14),
				AwayScore:  intPtr(16 + (w*7+i)%13),
			}
			games = append(games, g)
			lines[g.ID] = &models.MarketLine{GameID: g.ID, Spread: floatPtr(-2.5), Total: floatPtr(43.5)}
		}
	}
	return backtest.Input{Games: games, Lines: lines}
}

// lopsidedInput builds a slate where one side sweeps every game, so two
// opposite slates grade to very different records.
func lopsidedInput(homeSweeps bool, teams, weeks int) backtest.Input {
	homeScore, awayScore := 30, 10
	if !homeSweeps {
		homeScore, awayScore = 10, 30
	}
	ids := make([]uuid.UUID, teams)
	for i := range ids {
		ids[i] = uuid.New()
	}
	start := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	var games []*models.Game
	lines := map[uuid.UUID]*models.MarketLine{}
	for w := 0; w < weeks; w++ {
		for i := 0; i < teams; i += 2 {
			g := &models.Game{
				ID:         uuid.New(),
				Sport:      predictor.SportNFL,
				Season:     2024,
				HomeTeamID: ids[i],
				AwayTeamID: ids[i+1],
				Kickoff:    start.AddDate(0, 0, 7*w),
				Status:     models.GameStatusFinal,
				HomeScore:  intPtr(homeScore),
				AwayScore:  intPtr(awayScore),
			}
			games = append(games, g)
			lines[g.ID] = &models.MarketLine{GameID: g.ID, Spread: floatPtr(-2.5), Total: floatPtr(43.5)}
		}
	}
	return backtest.Input{Games: games, Lines: lines}
}

func TestGridCandidatesCardinality(t *testing.T) {
	g := Grid{
		Baseline:        models.SimulationParams{RatingToPoints: 0.05, HomeAdvantage: 2.0},
		RatingToPoints:  []float64{0.025, 0.05, 0.075},
		HomeAdvantage:   []float64{1.5, 2.5},
		SpreadShrinkage: []float64{0, 0.1},
	}
	// Full product over the three populated lists.
	assert.Len(t, g.Candidates(), 12)
}

func TestGridCandidatesDedupesExactMatches(t *testing.T) {
	baseline := models.SimulationParams{RatingToPoints: 0.05}
	g := Grid{
		Baseline:       baseline,
		RatingToPoints: []float64{0.05, 0.06},
		Extra:          []models.SimulationParams{baseline, {RatingToPoints: 0.06}},
	}
	// Product gives baseline and 0.06; both Extra entries are duplicates.
	assert.Len(t, g.Candidates(), 2)
}

func TestGridEmptyListsKeepBaseline(t *testing.T) {
	baseline := models.SimulationParams{RatingToPoints: 0.05, HomeAdvantage: 2.0, RatingCap: 14}
	cands := Grid{Baseline: baseline}.Candidates()
	require.Len(t, cands, 1)
	assert.Equal(t, baseline, cands[0])
}

func TestDeepSearchGridStaysNonNegative(t *testing.T) {
	g := DeepSearchGrid(models.SimulationParams{
		RatingToPoints:  0.05,
		HomeAdvantage:   -0.5,
		SpreadShrinkage: 0.0,
		StatsRegression: 0.3,
	})
	for _, v := range g.RatingToPoints {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	for _, v := range g.SpreadShrinkage {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	// Home advantage may legitimately go negative.
	assert.Contains(t, g.HomeAdvantage, -1.0)
}

func TestHashParamsStable(t *testing.T) {
	a := models.SimulationParams{RatingToPoints: 0.05, HomeAdvantage: 2.0}
	b := models.SimulationParams{RatingToPoints: 0.05, HomeAdvantage: 2.0}
	c := models.SimulationParams{RatingToPoints: 0.051, HomeAdvantage: 2.0}

	assert.Equal(t, HashParams(a), HashParams(b))
	assert.NotEqual(t, HashParams(a), HashParams(c))
}

func TestTolerancesWithin(t *testing.T) {
	tol := DefaultTolerances()
	a := models.SimulationParams{RatingToPoints: 0.05, HomeAdvantage: 2.0, SpreadShrinkage: 0.10}
	b := a
	b.HomeAdvantage = 2.2
	assert.True(t, tol.Within(a, b), "0.2 home-advantage gap is inside the 0.25 tolerance")

	b.SpreadShrinkage = 0.15
	assert.False(t, tol.Within(a, b), "one field out of tolerance breaks the match")
}

func TestFilterNearDuplicatesKeepsRankOrder(t *testing.T) {
	mk := func(ha, profit float64) models.SimulationResult {
		return models.SimulationResult{
			Params: models.SimulationParams{HomeAdvantage: ha},
			Profit: profit,
		}
	}
	ranked := []models.SimulationResult{
		mk(2.0, 500),
		mk(2.1, 480), // within tolerance of the leader
		mk(3.0, 450),
		mk(3.2, 440), // within tolerance of the third entry
	}

	kept := FilterNearDuplicates(ranked, DefaultTolerances())
	require.Len(t, kept, 2)
	assert.Equal(t, 500.0, kept[0].Profit)
	assert.Equal(t, 450.0, kept[1].Profit)
}

func TestSearchRanksAndFilters(t *testing.T) {
	sport, err := predictor.SportParamsFor(predictor.SportNFL)
	require.NoError(t, err)

	opt := New(sport, Config{
		MinSampleSize: 5,
		Workers:       3,
		TopN:          10,
	}, quietLogger())

	grid := Grid{
		Baseline: models.SimulationParams{
			RatingToPoints:  0.05,
			HomeAdvantage:   2.0,
			RatingCap:       14.0,
			MaxSpread:       14.0,
			StatsRegression: 0.3,
		},
		HomeAdvantage:   []float64{1.0, 2.0, 3.0},
		SpreadShrinkage: []float64{0, 0.2},
	}

	report, err := opt.Search(testInput(6, 10), grid)
	require.NoError(t, err)

	// 3 x 2 product; the baseline is one of the product entries.
	assert.Equal(t, 6, report.Trials)
	require.NotEmpty(t, report.Ranked)

	for i := 1; i < len(report.Ranked); i++ {
		assert.GreaterOrEqual(t, report.Ranked[i-1].Profit, report.Ranked[i].Profit, "ranking must be by profit, best first")
	}
	for _, r := range report.Ranked {
		assert.GreaterOrEqual(t, r.TotalGraded, 5)
		assert.Equal(t, r.Wins+r.Losses+r.Pushes, r.TotalGraded)
		assert.InDelta(t, float64(r.Wins)*100-float64(r.Losses)*110, r.Profit, 1e-9)
	}
	assert.NotNil(t, report.BestByWinPct)
}

func TestSearchMemoizesRepeatedCandidates(t *testing.T) {
	sport, err := predictor.SportParamsFor(predictor.SportNFL)
	require.NoError(t, err)

	opt := New(sport, Config{MinSampleSize: 1, Workers: 1}, quietLogger())
	in := testInput(4, 6)
	grid := Grid{Baseline: models.SimulationParams{RatingToPoints: 0.05, StatsRegression: 0.3}}

	first, err := opt.Search(in, grid)
	require.NoError(t, err)
	assert.Zero(t, first.CacheHits)

	second, err := opt.Search(in, grid)
	require.NoError(t, err)
	assert.Equal(t, 1, second.CacheHits, "a repeated candidate must reuse the memoized trial")
}

func TestSearchDoesNotReuseTrialsAcrossInputs(t *testing.T) {
	sport, err := predictor.SportParamsFor(predictor.SportNFL)
	require.NoError(t, err)

	opt := New(sport, Config{MinSampleSize: 1, Workers: 1}, quietLogger())
	grid := Grid{Baseline: models.SimulationParams{RatingToPoints: 0.05, HomeAdvantage: 2.0, StatsRegression: 0.3}}

	first, err := opt.Search(lopsidedInput(true, 4, 6), grid)
	require.NoError(t, err)
	require.Len(t, first.Ranked, 1)

	second, err := opt.Search(lopsidedInput(false, 4, 6), grid)
	require.NoError(t, err)
	require.Len(t, second.Ranked, 1)

	assert.Zero(t, second.CacheHits, "a new slate of games must not hit the previous slate's memo")
	assert.NotEqual(t, first.Ranked[0].ID, second.Ranked[0].ID)
	assert.NotEqual(t, first.Ranked[0].Wins, second.Ranked[0].Wins, "opposite slates must grade to different records")
}

func TestSearchMinSampleFilter(t *testing.T) {
	sport, err := predictor.SportParamsFor(predictor.SportNFL)
	require.NoError(t, err)

	// Far more graded games required than the schedule can provide.
	opt := New(sport, Config{MinSampleSize: 10_000, Workers: 2}, quietLogger())
	grid := Grid{Baseline: models.SimulationParams{RatingToPoints: 0.05, StatsRegression: 0.3}}

	report, err := opt.Search(testInput(4, 6), grid)
	require.NoError(t, err)
	assert.Empty(t, report.Ranked)
	assert.Equal(t, 1, report.BelowMinCount)
	assert.Nil(t, report.BestByWinPct)
	assert.Nil(t, report.BestByVolume)
}

func TestBreakevenWinPct(t *testing.T) {
	assert.InDelta(t, 52.38, BreakevenWinPct, 0.01)
}
