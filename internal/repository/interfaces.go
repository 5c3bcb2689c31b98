// Package repository persists and loads the engine's data records.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/sharpline/internal/models"
)

// TeamRepository loads and updates teams.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetBySeason(ctx context.Context, sport string, season int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
}

// GameRepository loads games. Season queries return games ordered by
// kickoff with the game ID breaking ties, so replays are reproducible.
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetBySeason(ctx context.Context, sport string, season int) ([]*models.Game, error)
}

// LineRepository loads market lines.
type LineRepository interface {
	Upsert(ctx context.Context, line *models.MarketLine) error
	GetByGameIDs(ctx context.Context, gameIDs []uuid.UUID) (map[uuid.UUID]*models.MarketLine, error)
}

// BacktestResultRepository persists the append-only result log.
type BacktestResultRepository interface {
	SaveBatch(ctx context.Context, results []*models.BacktestResult) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.BacktestResult, error)
}

// SimulationResultRepository persists ranked optimizer trials.
type SimulationResultRepository interface {
	SaveBatch(ctx context.Context, results []models.SimulationResult) error
	GetTopByProfit(ctx context.Context, limit int) ([]models.SimulationResult, error)
}
