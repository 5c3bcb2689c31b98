package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestGameTotalAndTie(t *testing.T) {
	g := &Game{Status: GameStatusFinal, HomeScore: intPtr(24), AwayScore: intPtr(24)}
	assert.Equal(t, 48, g.Total())
	assert.True(t, g.IsTie())

	g.AwayScore = intPtr(20)
	assert.Equal(t, 44, g.Total())
	assert.False(t, g.IsTie())

	scheduled := &Game{Status: GameStatusScheduled}
	assert.Zero(t, scheduled.Total())
	assert.False(t, scheduled.IsTie())
}

func TestMarketLineMovement(t *testing.T) {
	line := &MarketLine{
		Spread:     floatPtr(-3.5),
		OpenSpread: floatPtr(-2.5),
		Total:      floatPtr(44.5),
		OpenTotal:  floatPtr(46.0),
	}
	assert.InDelta(t, -1.0, line.SpreadMovement(), 1e-9, "line moved toward the home side")
	assert.InDelta(t, -1.5, line.TotalMovement(), 1e-9)

	noOpen := &MarketLine{Spread: floatPtr(-3.5), Total: floatPtr(44.5)}
	assert.Zero(t, noOpen.SpreadMovement())
	assert.Zero(t, noOpen.TotalMovement())

	var nilLine *MarketLine
	assert.Zero(t, nilLine.SpreadMovement())
	assert.Zero(t, nilLine.TotalMovement())
}

func TestTeamAverages(t *testing.T) {
	team := &Team{PointsFor: 230, PointsAgainst: 180, GamesPlayed: 10}
	assert.InDelta(t, 23.0, team.AvgPointsFor(21.5), 1e-9)
	assert.InDelta(t, 18.0, team.AvgPointsAgainst(21.5), 1e-9)

	fresh := &Team{}
	assert.InDelta(t, 21.5, fresh.AvgPointsFor(21.5), 1e-9, "no games yet falls back to the league average")
	assert.InDelta(t, 21.5, fresh.AvgPointsAgainst(21.5), 1e-9)
}
