package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

// PostgresSimulationResultRepository implements SimulationResultRepository for PostgreSQL
type PostgresSimulationResultRepository struct {
	db *database.DB
}

// NewPostgresSimulationResultRepository creates a new simulation result repository
func NewPostgresSimulationResultRepository(db *database.DB) SimulationResultRepository {
	return &PostgresSimulationResultRepository{db: db}
}

// SaveBatch persists ranked optimizer trials
func (r *PostgresSimulationResultRepository) SaveBatch(ctx context.Context, results []models.SimulationResult) error {
	query := `
		INSERT INTO simulation_results (
			id, params, wins, losses, pushes, total_games, total_graded,
			win_pct, profit, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	for _, res := range results {
		params, err := json.Marshal(res.Params)
		if err != nil {
			return fmt.Errorf("failed to marshal simulation params: %w", err)
		}
		_, err = r.db.GetPool().Exec(ctx, query,
			res.ID, params, res.Wins, res.Losses, res.Pushes, res.TotalGames,
			res.TotalGraded, res.WinPct, res.Profit, res.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save simulation result: %w", err)
		}
	}
	return nil
}

// GetTopByProfit retrieves the best trials for the operator report
func (r *PostgresSimulationResultRepository) GetTopByProfit(ctx context.Context, limit int) ([]models.SimulationResult, error) {
	query := `
		SELECT id, params, wins, losses, pushes, total_games, total_graded,
			win_pct, profit, created_at
		FROM simulation_results ORDER BY profit DESC LIMIT $1
	`
	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulation results: %w", err)
	}
	defer rows.Close()

	var results []models.SimulationResult
	for rows.Next() {
		var res models.SimulationResult
		var params []byte
		if err := rows.Scan(
			&res.ID, &params, &res.Wins, &res.Losses, &res.Pushes, &res.TotalGames,
			&res.TotalGraded, &res.WinPct, &res.Profit, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan simulation result: %w", err)
		}
		if err := json.Unmarshal(params, &res.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal simulation params: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
