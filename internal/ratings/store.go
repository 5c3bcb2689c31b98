// Package ratings maintains per-team Elo-style skill ratings.
package ratings

import (
	"github.com/google/uuid"

	"github.com/yourusername/sharpline/internal/models"
)

// Store maps team IDs to their current rating. Owned exclusively by one
// backtest run; never shared across concurrent optimizer trials.
type Store struct {
	ratings map[uuid.UUID]float64
}

// NewStore initializes an empty store. Every team starts at the default
// rating until set.
func NewStore() *Store {
	return &Store{ratings: make(map[uuid.UUID]float64)}
}

// NewStoreFrom seeds a store with carried-over ratings, e.g. from a prior
// season. The input map is copied.
func NewStoreFrom(seed map[uuid.UUID]float64) *Store {
	s := NewStore()
	for id, r := range seed {
		s.ratings[id] = r
	}
	return s
}

// Get returns the team's current rating, defaulting to 1500 when unseen.
func (s *Store) Get(teamID uuid.UUID) float64 {
	if r, ok := s.ratings[teamID]; ok {
		return r
	}
	return models.DefaultRating
}

// Set stores the team's rating.
func (s *Store) Set(teamID uuid.UUID, rating float64) {
	s.ratings[teamID] = rating
}

// Snapshot returns a copy of the current rating map.
func (s *Store) Snapshot() map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64, len(s.ratings))
	for id, r := range s.ratings {
		out[id] = r
	}
	return out
}

// Len returns the number of teams seen so far.
func (s *Store) Len() int {
	return len(s.ratings)
}
