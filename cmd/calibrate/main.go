// Package main provides the entry point for the calibration CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/sharpline/internal/backtest"
	"github.com/yourusername/sharpline/internal/calibration"
	"github.com/yourusername/sharpline/internal/config"
	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/logger"
	"github.com/yourusername/sharpline/internal/models"
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
	Use:   "calibrate",
	Short: "Fit rating-to-points and home advantage from historical margins",
	Long:  `Replays a season with ratings-only tracking, then fits margin ~ ratingDiff by ordinary least squares to recover the rating-to-points and home-advantage constants.`,
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

	// Ratings-only tracking: no market lines needed for calibration.
	runner := backtest.NewRunner(sport, models.SimulationParams{
		StatsRegression: cfg.Model.StatsRegression,
	}, log)
	replay, err := runner.Run(backtest.Input{Games: games})
	if err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	fit := calibration.Calibrate(replay.Samples)
	log.WithFields(logrus.Fields{
		"samples": fit.Samples,
		"r2":      fit.R2,
	}).Info("Calibration complete")

	fmt.Printf("rating_to_points: %.4f (%.2f points per 100 rating units)\n", fit.Slope, fit.SlopePer100)
	fmt.Printf("home_advantage:   %.2f points\n", fit.Intercept)
	fmt.Printf("r_squared:        %.4f over %d games\n", fit.R2, fit.Samples)
	return nil
}
