// Package config provides configuration management for the Sharpline engine.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Model     ModelConfig     `mapstructure:"model" validate:"required"`
	Backtest  BacktestConfig  `mapstructure:"backtest" validate:"required"`
	Optimizer OptimizerConfig `mapstructure:"optimizer" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password" validate:"required"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// ModelConfig holds the tunable prediction model constants per sport.
type ModelConfig struct {
	Sport           string  `mapstructure:"sport" validate:"required,sport"`
	RatingToPoints  float64 `mapstructure:"rating_to_points" validate:"gte=0"`
	HomeAdvantage   float64 `mapstructure:"home_advantage"`
	SpreadShrinkage float64 `mapstructure:"spread_shrinkage" validate:"gte=0,lte=1"`
	RatingCap       float64 `mapstructure:"rating_cap" validate:"gte=0"`
	MinSpread       float64 `mapstructure:"min_spread" validate:"gte=0"`
	MaxSpread       float64 `mapstructure:"max_spread" validate:"gte=0"`
	StatsRegression float64 `mapstructure:"stats_regression" validate:"gte=0,lte=1"`
	WeatherCoeff    float64 `mapstructure:"weather_coeff"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	Season       int    `mapstructure:"season" validate:"required,gt=0"`
	CarryRatings bool   `mapstructure:"carry_ratings"`
	OutputPath   string `mapstructure:"output_path"`
	PersistRuns  bool   `mapstructure:"persist_runs"`
}

// OptimizerConfig represents grid search configuration
type OptimizerConfig struct {
	MinSampleSize int    `mapstructure:"min_sample_size" validate:"required,gt=0"`
	Workers       int    `mapstructure:"workers" validate:"required,gt=0"`
	TopN          int    `mapstructure:"top_n" validate:"required,gt=0"`
	GradeMode     string `mapstructure:"grade_mode" validate:"oneof=market model"`
	DeepSearch    bool   `mapstructure:"deep_search"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
