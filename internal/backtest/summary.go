package backtest

import "github.com/yourusername/sharpline/internal/models"

// MarketRecord is a win/loss/push tally for one market and one line source.
type MarketRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`
}

// Graded returns the number of games counted in this record.
func (r MarketRecord) Graded() int {
	return r.Wins + r.Losses + r.Pushes
}

// WinPct returns wins over decided bets as a percentage, 0 when nothing
// was decided.
func (r MarketRecord) WinPct() float64 {
	decided := r.Wins + r.Losses
	if decided == 0 {
		return 0
	}
	return float64(r.Wins) / float64(decided) * 100
}

func (r *MarketRecord) add(o models.Outcome) {
	switch o {
	case models.OutcomeWin:
		r.Wins++
	case models.OutcomeLoss:
		r.Losses++
	case models.OutcomePush:
		r.Pushes++
	}
}

// Summary aggregates one replay. Spread and total records are kept per
// line source: market-graded and self/baseline-graded results measure
// different things and are never merged.
type Summary struct {
	TotalGames    int `json:"total_games"`
	ReplayedGames int `json:"replayed_games"`

	SpreadMarket  MarketRecord `json:"spread_market"`
	SpreadModel   MarketRecord `json:"spread_model"`
	Moneyline     MarketRecord `json:"moneyline"`
	TotalMarket   MarketRecord `json:"total_market"`
	TotalBaseline MarketRecord `json:"total_baseline"`
}
