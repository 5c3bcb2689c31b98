package repository

import (
	"fmt"

	"github.com/yourusername/sharpline/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Team             TeamRepository
	Game             GameRepository
	Line             LineRepository
	BacktestResult   BacktestResultRepository
	SimulationResult SimulationResultRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Team:             NewPostgresTeamRepository(db),
		Game:             NewPostgresGameRepository(db),
		Line:             NewPostgresLineRepository(db),
		BacktestResult:   NewPostgresBacktestResultRepository(db),
		SimulationResult: NewPostgresSimulationResultRepository(db),
	}, nil
}
