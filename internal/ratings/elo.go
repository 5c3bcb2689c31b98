package ratings

import "math"

// UpdaterConfig holds the sport-specific constants for the Elo update.
type UpdaterConfig struct {
	// KFactor is the maximum rating swing per game.
	KFactor float64
	// HomeAdvantage is expressed in rating units and shifts the expected
	// score toward the home side.
	HomeAdvantage float64
	// MarginScaling enables margin-of-victory scaling of the update.
	MarginScaling bool
}

// Updater computes post-game rating updates using the logistic
// expected-score model.
type Updater struct {
	cfg UpdaterConfig
}

// NewUpdater creates an updater with the given constants.
func NewUpdater(cfg UpdaterConfig) *Updater {
	return &Updater{cfg: cfg}
}

// ExpectedHomeScore returns the expected home result on [0,1]:
// 1 / (1 + 10^((away - home - homeAdv) / 400)).
func (u *Updater) ExpectedHomeScore(homeRating, awayRating float64) float64 {
	return expectedScore(homeRating+u.cfg.HomeAdvantage, awayRating)
}

// Update returns both teams' new ratings after a final game. The actual
// score is 1/0/0.5 by winner; both sides move symmetrically around the
// expectation. With margin scaling on, blowouts by the favorite move
// ratings less than upsets of the same margin.
func (u *Updater) Update(homeRating, awayRating float64, homeScore, awayScore int) (newHome, newAway float64) {
	expected := u.ExpectedHomeScore(homeRating, awayRating)

	actual := 0.5
	switch {
	case homeScore > awayScore:
		actual = 1.0
	case homeScore < awayScore:
		actual = 0.0
	}

	k := u.cfg.KFactor
	if u.cfg.MarginScaling {
		k *= marginMultiplier(homeScore-awayScore, homeRating-awayRating)
	}

	delta := k * (actual - expected)
	return homeRating + delta, awayRating - delta
}

func expectedScore(rating, oppRating float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (oppRating-rating)/400.0))
}

// marginMultiplier is the FiveThirtyEight NFL form: ln(|margin|+1) scaled
// down as the winner's rating edge grows, so heavy favorites don't run up
// ratings on expected blowouts.
func marginMultiplier(margin int, ratingDiff float64) float64 {
	winnerEdge := ratingDiff
	if margin < 0 {
		winnerEdge = -ratingDiff
	}
	return math.Log(math.Abs(float64(margin))+1) * (2.2 / (winnerEdge*0.001 + 2.2))
}

// WinProbability exposes the logistic expectation for standalone use, with
// the caller supplying the home-advantage rating units. The probability
// constant may differ from the margin constant used by the updater.
func WinProbability(homeRating, awayRating, homeAdvantage float64) float64 {
	return expectedScore(homeRating+homeAdvantage, awayRating)
}
