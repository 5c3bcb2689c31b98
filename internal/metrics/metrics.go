// Package metrics provides centralized Prometheus metrics for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest replays by sport and status",
	}, []string{"sport", "status"})
	OptimizerTrialsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sharpline",
		Name:      "optimizer_trials_total",
		Help:      "Total number of optimizer trials by sport",
	}, []string{"sport"})
)

// Gauge metrics
var (
	OptimizerBestProfit = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sharpline",
		Name:      "optimizer_best_profit",
		Help:      "Best simulated profit from the latest grid search",
	}, []string{"sport"})
)

// Histogram metrics
var (
	BacktestWinPct = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sharpline",
		Name:      "backtest_win_pct",
		Help:      "ATS win percentages observed across backtest replays",
		Buckets:   []float64{40, 45, 48, 50, 52.38, 55, 58, 62, 70},
	}, []string{"sport"})
)

// Register registers all engine metrics with the given registry.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		BacktestRunsTotal,
		OptimizerTrialsTotal,
		OptimizerBestProfit,
		BacktestWinPct,
	)
}

// RecordRun records a completed or failed replay.
// status should be one of: "success", "failure"
func RecordRun(sport, status string) {
	BacktestRunsTotal.WithLabelValues(sport, status).Inc()
}

// RecordSearch records all trials of one grid search.
func RecordSearch(sport string, trials int) {
	OptimizerTrialsTotal.WithLabelValues(sport).Add(float64(trials))
}

// SetBestProfit publishes the top-ranked trial's profit.
func SetBestProfit(sport string, profit float64) {
	OptimizerBestProfit.WithLabelValues(sport).Set(profit)
}

// ObserveWinPct records a replay's ATS win percentage.
func ObserveWinPct(sport string, pct float64) {
	BacktestWinPct.WithLabelValues(sport).Observe(pct)
}
