package predictor

import (
	"math"

	"github.com/yourusername/sharpline/internal/models"
)

// AttachTiers fills in confidence tiers on a prediction record by comparing
// the model's numbers against the market line. Tiers are derived metadata
// only; they never alter the pick. When a market value is missing the edge
// is taken against the sport baseline for totals and is zero for spreads,
// which lands in the low tier.
func (p *Predictor) AttachTiers(rec models.PredictionRecord, line *models.MarketLine) models.PredictionRecord {
	spreadEdge := 0.0
	if line.HasSpread() {
		spreadEdge = math.Abs(rec.Spread - *line.Spread)
	}
	totalRef := p.sport.BaselineTotal
	if line.HasTotal() {
		totalRef = *line.Total
	}
	totalEdge := math.Abs(rec.Total - totalRef)
	mlEdge := math.Abs(rec.HomeWinProb-0.5) * 100

	rec.SpreadTier = tierFor(spreadEdge, p.sport.SpreadEdgeHigh, p.sport.SpreadEdgeMedium)
	rec.TotalTier = tierFor(totalEdge, p.sport.TotalEdgeHigh, p.sport.TotalEdgeMedium)
	rec.MoneylineTier = tierFor(mlEdge, p.sport.MLEdgeHigh, p.sport.MLEdgeMedium)
	return rec
}

func tierFor(edge, high, medium float64) string {
	switch {
	case edge >= high:
		return models.TierHigh
	case edge >= medium:
		return models.TierMedium
	default:
		return models.TierLow
	}
}
