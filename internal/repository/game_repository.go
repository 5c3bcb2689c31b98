package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/sharpline/internal/database"
	"github.com/yourusername/sharpline/internal/models"
)

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

const gameColumns = `id, sport, season, home_team_id, away_team_id, kickoff,
	status, home_score, away_score, weather_impact, created_at, updated_at`

// Create inserts a game
func (r *PostgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (` + gameColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.Sport, game.Season, game.HomeTeamID, game.AwayTeamID, game.Kickoff,
		game.Status, game.HomeScore, game.AwayScore, game.WeatherImpact, game.CreatedAt, game.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetByID retrieves a game by ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.Sport, &game.Season, &game.HomeTeamID, &game.AwayTeamID, &game.Kickoff,
		&game.Status, &game.HomeScore, &game.AwayScore, &game.WeatherImpact, &game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// GetBySeason retrieves a season's games in replay order: kickoff
// ascending, game ID breaking ties.
func (r *PostgresGameRepository) GetBySeason(ctx context.Context, sport string, season int) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games WHERE sport = $1 AND season = $2
		ORDER BY kickoff, id
	`
	rows, err := r.db.GetPool().Query(ctx, query, sport, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		if err := rows.Scan(
			&game.ID, &game.Sport, &game.Season, &game.HomeTeamID, &game.AwayTeamID, &game.Kickoff,
			&game.Status, &game.HomeScore, &game.AwayScore, &game.WeatherImpact, &game.CreatedAt, &game.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
