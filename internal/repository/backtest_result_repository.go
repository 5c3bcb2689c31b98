package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

// PostgresBacktestResultRepository implements BacktestResultRepository for PostgreSQL
type PostgresBacktestResultRepository struct {
	db *database.DB
}

// NewPostgresBacktestResultRepository creates a new backtest result repository
func NewPostgresBacktestResultRepository(db *database.DB) BacktestResultRepository {
	return &PostgresBacktestResultRepository{db: db}
}

// SaveBatch appends one run's results. The log is append-only; rows are
// never updated.
func (r *PostgresBacktestResultRepository) SaveBatch(ctx context.Context, results []*models.BacktestResult) error {
	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO backtest_results (
			run_id, game_id, kickoff, home_rating, away_rating,
			predicted_home, predicted_away, predicted_spread, predicted_total, home_win_prob,
			home_score, away_score,
			spread_pick, spread_outcome, spread_source,
			moneyline_pick, moneyline_outcome,
			total_pick, total_outcome, total_source, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`
	for _, res := range results {
		batch.Queue(query,
			res.RunID, res.GameID, res.Kickoff, res.HomeRating, res.AwayRating,
			res.Prediction.HomeScore, res.Prediction.AwayScore, res.Prediction.Spread,
			res.Prediction.Total, res.Prediction.HomeWinProb,
			res.HomeScore, res.AwayScore,
			res.SpreadPick, res.SpreadOutcome, res.SpreadSource,
			res.MoneylinePick, res.MoneylineOut,
			res.TotalPick, res.TotalOutcome, res.TotalSource, res.CreatedAt,
		)
	}

	br := r.db.GetPool().SendBatch(ctx, batch)
	defer br.Close()
	for range results {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save backtest result: %w", err)
		}
	}
	return nil
}

// GetByRunID retrieves one run's results in replay order
func (r *PostgresBacktestResultRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.BacktestResult, error) {
	query := `
		SELECT run_id, game_id, kickoff, home_rating, away_rating,
			predicted_home, predicted_away, predicted_spread, predicted_total, home_win_prob,
			home_score, away_score,
			spread_pick, spread_outcome, spread_source,
			moneyline_pick, moneyline_outcome,
			total_pick, total_outcome, total_source, created_at
		FROM backtest_results WHERE run_id = $1 ORDER BY kickoff, game_id
	`
	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results: %w", err)
	}
	defer rows.Close()

	var results []*models.BacktestResult
	for rows.Next() {
		res := &models.BacktestResult{}
		if err := rows.Scan(
			&res.RunID, &res.GameID, &res.Kickoff, &res.HomeRating, &res.AwayRating,
			&res.Prediction.HomeScore, &res.Prediction.AwayScore, &res.Prediction.Spread,
			&res.Prediction.Total, &res.Prediction.HomeWinProb,
			&res.HomeScore, &res.AwayScore,
			&res.SpreadPick, &res.SpreadOutcome, &res.SpreadSource,
			&res.MoneylinePick, &res.MoneylineOut,
			&res.TotalPick, &res.TotalOutcome, &res.TotalSource, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan backtest result: %w", err)
		}
		res.Prediction.GameID = res.GameID
		results = append(results, res)
	}
	return results, rows.Err()
}
