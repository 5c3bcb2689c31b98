package backtest

import (
	"github.com/google/uuid"

	"github.com/yourusername/sharpline/internal/predictor"
	"github.com/yourusername/sharpline/internal/ratings"
)

// teamStats accumulates scoring averages strictly from games already
// replayed, so game N's prediction never sees game N's score.
type teamStats struct {
	pointsFor     float64
	pointsAgainst float64
	gamesPlayed   int
}

// runState is the per-run mutable state: the rating store plus rolling
// scoring averages. Owned by exactly one Run invocation.
type runState struct {
	ratings *ratings.Store
	stats   map[uuid.UUID]*teamStats
}

func newRunState(seed map[uuid.UUID]float64) *runState {
	return &runState{
		ratings: ratings.NewStoreFrom(seed),
		stats:   make(map[uuid.UUID]*teamStats),
	}
}

// teamInput builds the predictor input for one side, falling back to the
// league average before a team's first replayed game.
func (s *runState) teamInput(teamID uuid.UUID, sport predictor.SportParams) predictor.TeamInput {
	in := predictor.TeamInput{
		TeamID:       teamID,
		Rating:       s.ratings.Get(teamID),
		AvgPointsFor: sport.LeagueAvgPoints,
		AvgPointsVs:  sport.LeagueAvgPoints,
	}
	if st, ok := s.stats[teamID]; ok && st.gamesPlayed > 0 {
		in.AvgPointsFor = st.pointsFor / float64(st.gamesPlayed)
		in.AvgPointsVs = st.pointsAgainst / float64(st.gamesPlayed)
	}
	return in
}

// recordFinal advances the rolling averages after a game is graded.
func (s *runState) recordFinal(teamID uuid.UUID, scored, allowed int) {
	st, ok := s.stats[teamID]
	if !ok {
		st = &teamStats{}
		s.stats[teamID] = st
	}
	st.pointsFor += float64(scored)
	st.pointsAgainst += float64(allowed)
	st.gamesPlayed++
}
