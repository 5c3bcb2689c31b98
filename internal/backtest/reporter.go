package backtest

import (
	"fmt"
	"strings"
)

// GenerateConsoleReport formats a replay summary for terminal output.
func GenerateConsoleReport(run *Run) string {
	var builder strings.Builder
	builder.WriteString("Season Replay Report\n")
	builder.WriteString("====================\n")
	builder.WriteString(fmt.Sprintf("Run ID: %s\n", run.RunID))
	builder.WriteString(fmt.Sprintf("Games Replayed: %d of %d\n", run.Summary.ReplayedGames, run.Summary.TotalGames))
	writeRecord(&builder, "ATS (market lines)", run.Summary.SpreadMarket)
	writeRecord(&builder, "ATS (self-graded)", run.Summary.SpreadModel)
	writeRecord(&builder, "Moneyline", run.Summary.Moneyline)
	writeRecord(&builder, "Totals (market lines)", run.Summary.TotalMarket)
	writeRecord(&builder, "Totals (baseline)", run.Summary.TotalBaseline)
	return builder.String()
}

func writeRecord(builder *strings.Builder, label string, rec MarketRecord) {
	if rec.Graded() == 0 {
		return
	}
	builder.WriteString(fmt.Sprintf("%s: %d-%d-%d (%.1f%%)\n",
		label, rec.Wins, rec.Losses, rec.Pushes, rec.WinPct()))
}
