// Package main provides the entry point for the parameter grid search CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/sharpline/internal/backtest"
	"github.com/yourusername/sharpline/internal/config"
	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/health"
	"github.com/yourusername/sharpline/internal/logger"
	"github.com/yourusername/sharpline/internal/metrics"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/optimizer"
	"github.com/yourusername/sharpline/internal/predictor"
	"github.com/yourusername/sharpline/internal/repository"
)

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search the model parameter grid for the best configuration",
	Long:  `Runs a full season replay per candidate parameter set, ranks configurations by simulated -110 profit, and reports a deduplicated top list.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err = repository.NewRepositories(db)
	if err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		metrics.Register(registry)
		obs := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Port:        cfg.Metrics.Port,
			MetricsPath: cfg.Metrics.Path,
			Registry:    registry,
			Logger:      log,
			DB:          db,
		})
		obs.Start(ctx)
	}
	return nil
}

func run(ctx context.Context) error {
	defer db.Close()

	sport, err := predictor.SportParamsFor(cfg.Model.Sport)
	if err != nil {
		return err
	}

	games, err := repos.Game.GetBySeason(ctx, cfg.Model.Sport, cfg.Backtest.Season)
	if err != nil {
		return fmt.Errorf("failed to load games: %w", err)
	}
	gameIDs := make([]uuid.UUID, 0, len(games))
	for _, g := range games {
		gameIDs = append(gameIDs, g.ID)
	}
	lines, err := repos.Line.GetByGameIDs(ctx, gameIDs)
	if err != nil {
		return fmt.Errorf("failed to load market lines: %w", err)
	}
	input := backtest.Input{Games: games, Lines: lines}

	opt := optimizer.New(sport, optimizer.Config{
		MinSampleSize: cfg.Optimizer.MinSampleSize,
		Workers:       cfg.Optimizer.Workers,
		TopN:          cfg.Optimizer.TopN,
		GradeMode:     models.LineSource(cfg.Optimizer.GradeMode),
	}, log)

	grid := defaultGrid(cfg.Model)
	report, err := opt.Search(input, grid)
	if err != nil {
		return fmt.Errorf("grid search failed: %w", err)
	}

	if cfg.Optimizer.DeepSearch && len(report.Ranked) > 0 {
		log.WithField("trials", report.Trials).Info("Refining around the grid winner")
		report, err = opt.Search(input, optimizer.DeepSearchGrid(report.Ranked[0].Params))
		if err != nil {
			return fmt.Errorf("deep search failed: %w", err)
		}
	}

	if err := repos.SimulationResult.SaveBatch(ctx, report.Ranked); err != nil {
		return fmt.Errorf("failed to persist simulation results: %w", err)
	}

	printReport(report)
	return nil
}

func defaultGrid(m config.ModelConfig) optimizer.Grid {
	baseline := models.SimulationParams{
		RatingToPoints:  m.RatingToPoints,
		HomeAdvantage:   m.HomeAdvantage,
		SpreadShrinkage: m.SpreadShrinkage,
		RatingCap:       m.RatingCap,
		MinSpread:       m.MinSpread,
		MaxSpread:       m.MaxSpread,
		StatsRegression: m.StatsRegression,
		WeatherCoeff:    m.WeatherCoeff,
	}
	return optimizer.Grid{
		Baseline:        baseline,
		RatingToPoints:  []float64{0.025, 0.05, 0.075},
		HomeAdvantage:   []float64{1.5, 2.0, 2.5, 3.0},
		SpreadShrinkage: []float64{0, 0.1, 0.2, 0.3},
		StatsRegression: []float64{0.2, 0.3, 0.4},
		WeatherCoeff:    []float64{0, 0.5, 1.0},
	}
}

func printReport(report *optimizer.Report) {
	fmt.Printf("Trials: %d (cache hits: %d, below min sample: %d)\n",
		report.Trials, report.CacheHits, report.BelowMinCount)
	for i, res := range report.Ranked {
		fmt.Printf("%2d. profit %+8.0f  %d-%d-%d (%.1f%%)  r2p=%.3f ha=%.1f shrink=%.2f reg=%.2f\n",
			i+1, res.Profit, res.Wins, res.Losses, res.Pushes, res.WinPct,
			res.Params.RatingToPoints, res.Params.HomeAdvantage,
			res.Params.SpreadShrinkage, res.Params.StatsRegression)
	}
	if report.BestByWinPct != nil {
		fmt.Printf("Best win%%: %.1f%% on %d graded\n", report.BestByWinPct.WinPct, report.BestByWinPct.TotalGraded)
	}
	if report.BestByVolume != nil {
		fmt.Printf("Best volume at breakeven+: %d graded at %.1f%%\n", report.BestByVolume.TotalGraded, report.BestByVolume.WinPct)
	}
}
