// Package grading classifies predictions against realized outcomes and
// market lines as win/loss/push per market.
package grading

import (
	"github.com/yourusername/sharpline/internal/models"
)

// Config controls the missing-line policy and tie handling.
type Config struct {
	// BaselineTotal is the sport fallback O/U line used when no market
	// total exists. Totals are always graded; the fallback path is
	// labeled with LineSourceBaseline.
	BaselineTotal float64
	// TiesAllowed keeps tied finals in the moneyline denominator. When
	// false a tie returns OutcomeNone and the game is excluded.
	TiesAllowed bool
}

// Engine is a pure classification function. One call grades all three
// markets for a game.
type Engine struct {
	cfg Config
}

// NewEngine creates a grading engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Graded holds the per-market picks, outcomes and line provenance for one
// game. Market-graded and self-graded spreads carry different LineSource
// labels and must never be averaged together downstream.
type Graded struct {
	SpreadPick    models.Pick
	SpreadOutcome models.Outcome
	SpreadSource  models.LineSource
	MoneylinePick models.Pick
	MoneylineOut  models.Outcome
	TotalPick     models.Pick
	TotalOutcome  models.Outcome
	TotalSource   models.LineSource
}

// Grade classifies one final game. The prediction decides each pick; the
// actual scores decide the outcome.
func (e *Engine) Grade(pred models.PredictionRecord, line *models.MarketLine, homeScore, awayScore int) Graded {
	g := Graded{}
	g.SpreadPick, g.SpreadOutcome, g.SpreadSource = e.gradeSpread(pred, line, homeScore, awayScore)
	g.MoneylinePick, g.MoneylineOut = e.gradeMoneyline(pred, homeScore, awayScore)
	g.TotalPick, g.TotalOutcome, g.TotalSource = e.gradeTotal(pred, line, homeScore, awayScore)
	return g
}

// gradeSpread bets the side the model favors relative to the line. With no
// market line the model's own predicted spread stands in as a
// self-referential backtest line; against one's own line the model has no
// lean, so the pick defaults to the predicted winner's side.
func (e *Engine) gradeSpread(pred models.PredictionRecord, line *models.MarketLine, homeScore, awayScore int) (models.Pick, models.Outcome, models.LineSource) {
	betLine := pred.Spread
	source := models.LineSourceModel
	if line.HasSpread() {
		betLine = *line.Spread
		source = models.LineSourceMarket
	}

	// Pick home when the model's spread is more home-favorable than the
	// line (model spread below the line means the model likes home by
	// more than the book does).
	pick := models.PickAway
	if pred.Spread < betLine || (pred.Spread == betLine && pred.FavorsHome()) {
		pick = models.PickHome
	}

	actualMargin := homeScore - awayScore
	cover := float64(actualMargin) + betLine
	switch {
	case cover == 0:
		return pick, models.OutcomePush, source
	case cover > 0: // home covered
		if pick == models.PickHome {
			return pick, models.OutcomeWin, source
		}
		return pick, models.OutcomeLoss, source
	default: // away covered
		if pick == models.PickAway {
			return pick, models.OutcomeWin, source
		}
		return pick, models.OutcomeLoss, source
	}
}

// gradeMoneyline bets the side with predicted win probability above 0.5.
// Wins only on a strict scoreboard win.
func (e *Engine) gradeMoneyline(pred models.PredictionRecord, homeScore, awayScore int) (models.Pick, models.Outcome) {
	pick := models.PickAway
	if pred.FavorsHome() {
		pick = models.PickHome
	}

	if homeScore == awayScore {
		if !e.cfg.TiesAllowed {
			return pick, models.OutcomeNone
		}
		return pick, models.OutcomePush
	}

	homeWon := homeScore > awayScore
	if (homeWon && pick == models.PickHome) || (!homeWon && pick == models.PickAway) {
		return pick, models.OutcomeWin
	}
	return pick, models.OutcomeLoss
}

// gradeTotal bets over when the predicted total clears the line, under
// otherwise. Missing market total falls back to the sport baseline.
func (e *Engine) gradeTotal(pred models.PredictionRecord, line *models.MarketLine, homeScore, awayScore int) (models.Pick, models.Outcome, models.LineSource) {
	betLine := e.cfg.BaselineTotal
	source := models.LineSourceBaseline
	if line.HasTotal() {
		betLine = *line.Total
		source = models.LineSourceMarket
	}

	pick := models.PickUnder
	if pred.Total > betLine {
		pick = models.PickOver
	}

	actual := float64(homeScore + awayScore)
	switch {
	case actual == betLine:
		return pick, models.OutcomePush, source
	case actual > betLine:
		if pick == models.PickOver {
			return pick, models.OutcomeWin, source
		}
		return pick, models.OutcomeLoss, source
	default:
		if pick == models.PickUnder {
			return pick, models.OutcomeWin, source
		}
		return pick, models.OutcomeLoss, source
	}
}
