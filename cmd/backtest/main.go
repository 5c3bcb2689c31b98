// Package main provides the entry point for the season-replay CLI tool.
package main

import (
	"context"
	"encoding/json"
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
	"github.com/yourusername/sharpline/internal/predictor"
	"github.com/yourusername/sharpline/internal/repository"
)

var (
	configFile string
	season     int
	log        *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().IntVar(&season, "season", 0, "Season override")
}

var rootCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay a historical season through the prediction model",
	Long:  `Replays one sport season game by game, grading spread, moneyline and total picks against realized outcomes and market lines.`,
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
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		if err := config.LoadSecretsFromAWS(cfg, os.Getenv("AWS_REGION"), os.Getenv("AWS_SECRET_NAME")); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
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

	if season == 0 {
		season = cfg.Backtest.Season
	}
	sport, err := predictor.SportParamsFor(cfg.Model.Sport)
	if err != nil {
		return err
	}

	games, err := repos.Game.GetBySeason(ctx, cfg.Model.Sport, season)
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
	if cfg.Backtest.CarryRatings {
		input.InitialRatings, err = priorSeasonRatings(ctx, cfg.Model.Sport, season-1)
		if err != nil {
			return err
		}
	}

	runner := backtest.NewRunner(sport, paramsFromConfig(cfg.Model), log)
	replay, err := runner.Run(input)
	if err != nil {
		metrics.RecordRun(sport.Code, "failure")
		return fmt.Errorf("replay failed: %w", err)
	}
	metrics.RecordRun(sport.Code, "success")
	metrics.ObserveWinPct(sport.Code, replay.Summary.SpreadMarket.WinPct())

	if cfg.Backtest.PersistRuns {
		if err := repos.BacktestResult.SaveBatch(ctx, replay.Results); err != nil {
			return fmt.Errorf("failed to persist results: %w", err)
		}
	}

	if cfg.Backtest.OutputPath != "" {
		if err := writeJSONReport(cfg.Backtest.OutputPath, replay); err != nil {
			return err
		}
		log.WithField("path", cfg.Backtest.OutputPath).Info("Replay written")
	}

	fmt.Print(backtest.GenerateConsoleReport(replay))
	return nil
}

func writeJSONReport(path string, replay *backtest.Run) error {
	data, err := json.MarshalIndent(replay, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write replay: %w", err)
	}
	return nil
}

// priorSeasonRatings seeds the replay with last season's closing ratings.
func priorSeasonRatings(ctx context.Context, sportCode string, season int) (map[uuid.UUID]float64, error) {
	teams, err := repos.Team.GetBySeason(ctx, sportCode, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior season teams: %w", err)
	}
	seed := make(map[uuid.UUID]float64, len(teams))
	for _, t := range teams {
		seed[t.ID] = t.Rating
	}
	log.WithFields(logrus.Fields{
		"season": season,
		"teams":  len(seed),
	}).Info("Carrying ratings from prior season")
	return seed, nil
}

func paramsFromConfig(m config.ModelConfig) models.SimulationParams {
	return models.SimulationParams{
		RatingToPoints:  m.RatingToPoints,
		HomeAdvantage:   m.HomeAdvantage,
		SpreadShrinkage: m.SpreadShrinkage,
		RatingCap:       m.RatingCap,
		MinSpread:       m.MinSpread,
		MaxSpread:       m.MaxSpread,
		StatsRegression: m.StatsRegression,
		WeatherCoeff:    m.WeatherCoeff,
	}
}
