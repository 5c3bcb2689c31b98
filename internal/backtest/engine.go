// Package backtest replays historical seasons through the rating and
// prediction pipeline, grading every game against realized outcomes.
package backtest

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/sharpline/internal/calibration"
	"github.com/yourusername/sharpline/internal/grading"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/predictor"
	"github.com/yourusername/sharpline/internal/ratings"
)

// Runner drives predictor, grader and rating updater over one
// chronologically ordered game list. Single pass, single goroutine; each
// optimizer trial gets its own Runner.
type Runner struct {
	sport   predictor.SportParams
	params  models.SimulationParams
	pred    *predictor.Predictor
	grader  *grading.Engine
	updater *ratings.Updater
	logger  *logrus.Logger
}

// NewRunner creates a runner for one sport and one parameter set.
func NewRunner(sport predictor.SportParams, params models.SimulationParams, logger *logrus.Logger) *Runner {
	if logger == nil {
		logger = logrus.New()
	}
	return &Runner{
		sport:  sport,
		params: params,
		pred:   predictor.New(sport, params),
		grader: grading.NewEngine(grading.Config{
			BaselineTotal: sport.BaselineTotal,
			TiesAllowed:   sport.TiesAllowed,
		}),
		updater: ratings.NewUpdater(ratings.UpdaterConfig{
			KFactor:       sport.EloK,
			HomeAdvantage: sport.EloHomeAdvantage,
			MarginScaling: sport.MarginScaling,
		}),
		logger: logger,
	}
}

// Input is the plain-data contract consumed from collaborators: the games
// to replay, market lines keyed by game, and optional carried-over ratings.
type Input struct {
	Games          []*models.Game
	Lines          map[uuid.UUID]*models.MarketLine
	InitialRatings map[uuid.UUID]float64
}

// Run is the output of one replay: the append-only result log, the derived
// summary, the calibration samples, and the end-of-pass rating map.
type Run struct {
	RunID        uuid.UUID
	Results      []*models.BacktestResult
	Summary      Summary
	Samples      []calibration.Sample
	FinalRatings map[uuid.UUID]float64
}

// Run replays the games in chronological order. Games are sorted
// defensively by kickoff with the game ID breaking ties, so reruns over a
// permuted input produce identical results. Non-final games are skipped.
// The rating and scoring state used to predict game N derives only from
// games strictly before N.
func (r *Runner) Run(in Input) (*Run, error) {
	if len(in.Games) == 0 {
		return nil, models.ErrNoGames
	}

	games := make([]*models.Game, len(in.Games))
	copy(games, in.Games)
	sort.Slice(games, func(i, j int) bool {
		if !games[i].Kickoff.Equal(games[j].Kickoff) {
			return games[i].Kickoff.Before(games[j].Kickoff)
		}
		return games[i].ID.String() < games[j].ID.String()
	})

	state := newRunState(in.InitialRatings)
	run := &Run{RunID: uuid.New()}
	run.Summary.TotalGames = len(games)

	start := time.Now()
	for _, game := range games {
		if !game.IsFinal() {
			continue
		}
		r.step(game, in.Lines[game.ID], state, run)
	}
	run.FinalRatings = state.ratings.Snapshot()

	r.logger.WithFields(logrus.Fields{
		"run_id":   run.RunID,
		"sport":    r.sport.Code,
		"games":    run.Summary.ReplayedGames,
		"duration": time.Since(start),
	}).Debug("Replay complete")

	return run, nil
}

// step processes one final game: predict with pre-game state, grade, append
// the result, then advance ratings and rolling averages.
func (r *Runner) step(game *models.Game, line *models.MarketLine, state *runState, run *Run) {
	home := state.teamInput(game.HomeTeamID, r.sport)
	away := state.teamInput(game.AwayTeamID, r.sport)

	pred := r.pred.Predict(game.ID, home, away, game.WeatherImpact)
	pred = r.pred.AttachTiers(pred, line)

	graded := r.grader.Grade(pred, line, *game.HomeScore, *game.AwayScore)

	result := &models.BacktestResult{
		RunID:         run.RunID,
		GameID:        game.ID,
		Kickoff:       game.Kickoff,
		HomeRating:    home.Rating,
		AwayRating:    away.Rating,
		Prediction:    pred,
		Line:          line,
		HomeScore:     *game.HomeScore,
		AwayScore:     *game.AwayScore,
		SpreadPick:    graded.SpreadPick,
		SpreadOutcome: graded.SpreadOutcome,
		SpreadSource:  graded.SpreadSource,
		MoneylinePick: graded.MoneylinePick,
		MoneylineOut:  graded.MoneylineOut,
		TotalPick:     graded.TotalPick,
		TotalOutcome:  graded.TotalOutcome,
		TotalSource:   graded.TotalSource,
		CreatedAt:     time.Now().UTC(),
	}
	run.Results = append(run.Results, result)
	run.Samples = append(run.Samples, calibration.Sample{
		RatingDiff: home.Rating - away.Rating,
		Margin:     float64(game.Margin()),
	})

	r.tally(&run.Summary, result)

	newHome, newAway := r.updater.Update(home.Rating, away.Rating, *game.HomeScore, *game.AwayScore)
	state.ratings.Set(game.HomeTeamID, newHome)
	state.ratings.Set(game.AwayTeamID, newAway)
	state.recordFinal(game.HomeTeamID, *game.HomeScore, *game.AwayScore)
	state.recordFinal(game.AwayTeamID, *game.AwayScore, *game.HomeScore)

	run.Summary.ReplayedGames++
}

func (r *Runner) tally(s *Summary, res *models.BacktestResult) {
	if res.SpreadSource == models.LineSourceMarket {
		s.SpreadMarket.add(res.SpreadOutcome)
	} else {
		s.SpreadModel.add(res.SpreadOutcome)
	}
	s.Moneyline.add(res.MoneylineOut)
	if res.TotalSource == models.LineSourceMarket {
		s.TotalMarket.add(res.TotalOutcome)
	} else {
		s.TotalBaseline.add(res.TotalOutcome)
	}
}
