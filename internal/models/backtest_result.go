package models

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies a graded bet.
type Outcome string

// Graded outcomes. OutcomeNone marks a market that was not graded for this
// game (e.g. moneyline on a tie) and is excluded from all denominators.
const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
	OutcomeNone Outcome = ""
)

// Graded reports whether the outcome counts toward a record.
func (o Outcome) Graded() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomePush
}

// Pick sides per market.
type Pick string

const (
	PickHome  Pick = "home"
	PickAway  Pick = "away"
	PickOver  Pick = "over"
	PickUnder Pick = "under"
	PickNone  Pick = ""
)

// LineSource labels where the line a bet was graded against came from.
// Market-graded and self-graded results are never averaged together.
type LineSource string

const (
	LineSourceMarket   LineSource = "market"
	LineSourceModel    LineSource = "model"
	LineSourceBaseline LineSource = "baseline"
)

// BacktestResult joins one game with its pre-game ratings, the prediction,
// the market line if any, and graded outcomes. Append-only.
type BacktestResult struct {
	RunID         uuid.UUID        `db:"run_id" json:"run_id"`
	GameID        uuid.UUID        `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Kickoff       time.Time        `db:"kickoff" json:"kickoff"`
	HomeRating    float64          `db:"home_rating" json:"home_rating"`
	AwayRating    float64          `db:"away_rating" json:"away_rating"`
	Prediction    PredictionRecord `db:"-" json:"prediction"`
	Line          *MarketLine      `db:"-" json:"line,omitempty"`
	HomeScore     int              `db:"home_score" json:"home_score"`
	AwayScore     int              `db:"away_score" json:"away_score"`
	SpreadPick    Pick             `db:"spread_pick" json:"spread_pick"`
	SpreadOutcome Outcome          `db:"spread_outcome" json:"spread_outcome"`
	SpreadSource  LineSource       `db:"spread_source" json:"spread_source"`
	MoneylinePick Pick             `db:"moneyline_pick" json:"moneyline_pick"`
	MoneylineOut  Outcome          `db:"moneyline_outcome" json:"moneyline_outcome"`
	TotalPick     Pick             `db:"total_pick" json:"total_pick"`
	TotalOutcome  Outcome          `db:"total_outcome" json:"total_outcome"`
	TotalSource   LineSource       `db:"total_source" json:"total_source"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}
