package backtest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/predictor"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testRunner(t *testing.T) *Runner {
	t.Helper()
	sport, err := predictor.SportParamsFor(predictor.SportNFL)
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewRunner(sport, models.SimulationParams{
		RatingToPoints:  0.05,
		HomeAdvantage:   2.0,
		SpreadShrinkage: 0.1,
		RatingCap:       14.0,
		StatsRegression: 0.3,
		WeatherCoeff:    1.0,
	}, log)
}

func finalGame(home, away uuid.UUID, kickoff time.Time, homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:         uuid.New(),
		Sport:      predictor.SportNFL,
		Season:     2024,
		HomeTeamID: home,
		AwayTeamID: away,
		Kickoff:    kickoff,
		Status:     models.GameStatusFinal,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

// season builds a small round-robin schedule with deterministic scores.
func season(teams []uuid.UUID, weeks int) []*models.Game {
	start := time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC)
	var games []*models.Game
	for w := 0; w < weeks; w++ {
		for i := 0; i < len(teams); i += 2 {
			home, away := teams[i], teams[i+1]
			if w%2 == 1 {
				home, away = away, home
			}
			games = append(games, finalGame(home, away,
				start.AddDate(0, 0, 7*w), 20+(w+i)%10, 17+(w*3+i)%9))
		}
	}
	return games
}

func TestRunEmptyInput(t *testing.T) {
	r := testRunner(t)
	_, err := r.Run(Input{})
	assert.ErrorIs(t, err, models.ErrNoGames)
}

func TestRunSkipsNonFinalGames(t *testing.T) {
	r := testRunner(t)
	teamA, teamB := uuid.New(), uuid.New()

	scheduled := &models.Game{
		ID:         uuid.New(),
		HomeTeamID: teamA,
		AwayTeamID: teamB,
		Kickoff:    time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC),
		Status:     models.GameStatusScheduled,
	}
	final := finalGame(teamA, teamB, time.Date(2024, 9, 15, 18, 0, 0, 0, time.UTC), 24, 20)

	run, err := r.Run(Input{Games: []*models.Game{scheduled, final}})
	require.NoError(t, err)

	assert.Equal(t, 2, run.Summary.TotalGames)
	assert.Equal(t, 1, run.Summary.ReplayedGames)
	require.Len(t, run.Results, 1)
	assert.Equal(t, final.ID, run.Results[0].GameID)
}

func TestRunFirstGameSeesOnlyPriors(t *testing.T) {
	r := testRunner(t)
	teamA, teamB := uuid.New(), uuid.New()
	games := []*models.Game{
		finalGame(teamA, teamB, time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC), 35, 10),
		finalGame(teamB, teamA, time.Date(2024, 9, 15, 18, 0, 0, 0, time.UTC), 21, 24),
	}

	run, err := r.Run(Input{Games: games})
	require.NoError(t, err)
	require.Len(t, run.Results, 2)

	first, second := run.Results[0], run.Results[1]
	assert.Equal(t, models.DefaultRating, first.HomeRating, "nothing is known before the opener")
	assert.Equal(t, models.DefaultRating, first.AwayRating)

	// The opener's blowout must show up in week two's pre-game state.
	assert.Greater(t, second.AwayRating, models.DefaultRating, "week one winner carries a higher rating")
	assert.Less(t, second.HomeRating, models.DefaultRating)
}

func TestRunSeededRatingsCarryOver(t *testing.T) {
	r := testRunner(t)
	teamA, teamB := uuid.New(), uuid.New()
	games := []*models.Game{finalGame(teamA, teamB, time.Now().UTC(), 20, 17)}

	run, err := r.Run(Input{
		Games:          games,
		InitialRatings: map[uuid.UUID]float64{teamA: 1650, teamB: 1400},
	})
	require.NoError(t, err)
	assert.Equal(t, 1650.0, run.Results[0].HomeRating)
	assert.Equal(t, 1400.0, run.Results[0].AwayRating)
}

func TestRunIsOrderIndependent(t *testing.T) {
	r := testRunner(t)
	teams := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	games := season(teams, 6)

	lines := map[uuid.UUID]*models.MarketLine{}
	for i, g := range games {
		if i%2 == 0 {
			lines[g.ID] = &models.MarketLine{GameID: g.ID, Spread: floatPtr(-2.5), Total: floatPtr(43.5)}
		}
	}

	sorted, err := r.Run(Input{Games: games, Lines: lines})
	require.NoError(t, err)

	shuffled := make([]*models.Game, len(games))
	copy(shuffled, games)
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	permuted, err := r.Run(Input{Games: shuffled, Lines: lines})
	require.NoError(t, err)

	assert.Equal(t, sorted.Summary, permuted.Summary)
	assert.Equal(t, sorted.FinalRatings, permuted.FinalRatings)
	require.Equal(t, len(sorted.Results), len(permuted.Results))
	for i := range sorted.Results {
		assert.Equal(t, sorted.Results[i].GameID, permuted.Results[i].GameID, "replay order must be kickoff order")
		assert.Equal(t, sorted.Results[i].Prediction.Spread, permuted.Results[i].Prediction.Spread)
		assert.Equal(t, sorted.Results[i].SpreadOutcome, permuted.Results[i].SpreadOutcome)
	}
}

func TestRunKeepsLineSourcesSeparate(t *testing.T) {
	r := testRunner(t)
	teams := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	games := season(teams, 4)

	// Lines for half the slate only.
	lines := map[uuid.UUID]*models.MarketLine{}
	withLine := 0
	for i, g := range games {
		if i%2 == 0 {
			lines[g.ID] = &models.MarketLine{GameID: g.ID, Spread: floatPtr(-3.0), Total: floatPtr(44.5)}
			withLine++
		}
	}

	run, err := r.Run(Input{Games: games, Lines: lines})
	require.NoError(t, err)

	assert.Equal(t, withLine, run.Summary.SpreadMarket.Graded())
	assert.Equal(t, len(games)-withLine, run.Summary.SpreadModel.Graded())
	assert.Equal(t, withLine, run.Summary.TotalMarket.Graded())
	assert.Equal(t, len(games)-withLine, run.Summary.TotalBaseline.Graded())

	for _, res := range run.Results {
		if _, ok := lines[res.GameID]; ok {
			assert.Equal(t, models.LineSourceMarket, res.SpreadSource)
		} else {
			assert.Equal(t, models.LineSourceModel, res.SpreadSource)
		}
	}
}

func TestRunCollectsCalibrationSamples(t *testing.T) {
	r := testRunner(t)
	teamA, teamB := uuid.New(), uuid.New()
	games := []*models.Game{
		finalGame(teamA, teamB, time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC), 31, 13),
	}

	run, err := r.Run(Input{Games: games})
	require.NoError(t, err)
	require.Len(t, run.Samples, 1)
	assert.Equal(t, 0.0, run.Samples[0].RatingDiff, "both teams open at the default rating")
	assert.Equal(t, 18.0, run.Samples[0].Margin)
}

func TestRunThreeGameScenario(t *testing.T) {
	r := testRunner(t)
	teamA, teamB, teamC := uuid.New(), uuid.New(), uuid.New()

	week := func(n int) time.Time {
		return time.Date(2024, 9, 8, 18, 0, 0, 0, time.UTC).AddDate(0, 0, 7*(n-1))
	}
	games := []*models.Game{
		finalGame(teamA, teamB, week(1), 31, 13),
		finalGame(teamC, teamA, week(2), 20, 23),
		finalGame(teamB, teamC, week(3), 17, 24),
	}
	g2Spread := -3.0
	g2Total := 42.5
	lines := map[uuid.UUID]*models.MarketLine{
		games[1].ID: {GameID: games[1].ID, Spread: &g2Spread, Total: &g2Total},
	}

	run, err := r.Run(Input{Games: games, Lines: lines})
	require.NoError(t, err)
	require.Len(t, run.Results, 3)

	// Week 1: everything starts flat, so the home side is favored on the
	// model's own line and the win probability alone. Home won big.
	g1 := run.Results[0]
	assert.Equal(t, models.LineSourceModel, g1.SpreadSource)
	assert.Equal(t, models.PickHome, g1.MoneylinePick)
	assert.Equal(t, models.OutcomeWin, g1.MoneylineOut)
	assert.Equal(t, models.LineSourceBaseline, g1.TotalSource)
	assert.Equal(t, models.PickUnder, g1.TotalPick, "a flat slate predicts exactly the baseline, which defaults under")
	assert.Equal(t, models.OutcomePush, g1.TotalOutcome, "44 points against a 44 baseline is a push")

	// Week 2: teamA arrives 31-13 stronger than an unseen teamC, so the
	// model likes the road side more than the book's home -3.
	g2 := run.Results[1]
	assert.Equal(t, models.LineSourceMarket, g2.SpreadSource)
	assert.Greater(t, g2.AwayRating, g2.HomeRating)
	assert.Equal(t, models.PickAway, g2.SpreadPick)
	assert.Equal(t, models.OutcomeWin, g2.SpreadOutcome, "away won outright against home -3")

	// Ratings after three games: teamA beat both within two weeks.
	finalA := run.FinalRatings[teamA]
	finalB := run.FinalRatings[teamB]
	assert.Greater(t, finalA, models.DefaultRating)
	assert.Less(t, finalB, models.DefaultRating, "two losses sink the rating")

	assert.Equal(t, 3, run.Summary.ReplayedGames)
	assert.Equal(t, 1, run.Summary.SpreadMarket.Graded())
	assert.Equal(t, 2, run.Summary.SpreadModel.Graded())
	assert.Equal(t, 3, run.Summary.Moneyline.Graded())
	assert.Equal(t, 1, run.Summary.TotalMarket.Graded())
	assert.Equal(t, 2, run.Summary.TotalBaseline.Graded())
	require.Len(t, run.Samples, 3)
}

func TestRunsAreIndependent(t *testing.T) {
	r := testRunner(t)
	teams := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	games := season(teams, 5)

	first, err := r.Run(Input{Games: games})
	require.NoError(t, err)
	second, err := r.Run(Input{Games: games})
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Summary, second.Summary, "a rerun starts from fresh state")
	assert.Equal(t, first.FinalRatings, second.FinalRatings)
}
