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

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// Create inserts a team
func (r *PostgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (
			id, sport, season, abbreviation, name, rating,
			points_for, points_against, games_played, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err := r.db.GetPool().Exec(ctx, query,
		team.ID, team.Sport, team.Season, team.Abbreviation, team.Name, team.Rating,
		team.PointsFor, team.PointsAgainst, team.GamesPlayed, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetByID retrieves a team by ID
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := `
		SELECT id, sport, season, abbreviation, name, rating,
			points_for, points_against, games_played, created_at, updated_at
		FROM teams WHERE id = $1
	`
	team := &models.Team{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&team.ID, &team.Sport, &team.Season, &team.Abbreviation, &team.Name, &team.Rating,
		&team.PointsFor, &team.PointsAgainst, &team.GamesPlayed, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// GetBySeason retrieves all teams for a sport and season
func (r *PostgresTeamRepository) GetBySeason(ctx context.Context, sport string, season int) ([]*models.Team, error) {
	query := `
		SELECT id, sport, season, abbreviation, name, rating,
			points_for, points_against, games_played, created_at, updated_at
		FROM teams WHERE sport = $1 AND season = $2 ORDER BY abbreviation
	`
	rows, err := r.db.GetPool().Query(ctx, query, sport, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team := &models.Team{}
		if err := rows.Scan(
			&team.ID, &team.Sport, &team.Season, &team.Abbreviation, &team.Name, &team.Rating,
			&team.PointsFor, &team.PointsAgainst, &team.GamesPlayed, &team.CreatedAt, &team.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// Update persists the team's rating and rolling scoring totals
func (r *PostgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET rating = $2, points_for = $3, points_against = $4,
			games_played = $5, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.GetPool().Exec(ctx, query,
		team.ID, team.Rating, team.PointsFor, team.PointsAgainst, team.GamesPlayed,
	)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
