package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

// PostgresLineRepository implements LineRepository for PostgreSQL
type PostgresLineRepository struct {
	db *database.DB
}

// NewPostgresLineRepository creates a new market line repository
func NewPostgresLineRepository(db *database.DB) LineRepository {
	return &PostgresLineRepository{db: db}
}

// Upsert inserts or replaces the line for a game
func (r *PostgresLineRepository) Upsert(ctx context.Context, line *models.MarketLine) error {
	query := `
		INSERT INTO market_lines (
			game_id, spread, total, open_spread, open_total, captured_at, locked_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (game_id) DO UPDATE SET
			spread = EXCLUDED.spread,
			total = EXCLUDED.total,
			captured_at = EXCLUDED.captured_at,
			locked_at = EXCLUDED.locked_at
	`
	_, err := r.db.GetPool().Exec(ctx, query,
		line.GameID, line.Spread, line.Total, line.OpenSpread, line.OpenTotal,
		line.CapturedAt, line.LockedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert market line: %w", err)
	}
	return nil
}

// GetByGameIDs retrieves lines for a batch of games, keyed by game ID.
// Games with no captured line are simply absent from the map.
func (r *PostgresLineRepository) GetByGameIDs(ctx context.Context, gameIDs []uuid.UUID) (map[uuid.UUID]*models.MarketLine, error) {
	if len(gameIDs) == 0 {
		return map[uuid.UUID]*models.MarketLine{}, nil
	}

	query := `
		SELECT game_id, spread, total, open_spread, open_total, captured_at, locked_at
		FROM market_lines WHERE game_id = ANY($1)
	`
	rows, err := r.db.GetPool().Query(ctx, query, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query market lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[uuid.UUID]*models.MarketLine, len(gameIDs))
	for rows.Next() {
		line := &models.MarketLine{}
		if err := rows.Scan(
			&line.GameID, &line.Spread, &line.Total, &line.OpenSpread, &line.OpenTotal,
			&line.CapturedAt, &line.LockedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan market line: %w", err)
		}
		lines[line.GameID] = line
	}
	return lines, rows.Err()
}
