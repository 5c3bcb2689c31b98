// Package calibration fits the rating-to-points and home-advantage
// constants from historical rating gaps and score margins.
package calibration

// Sample pairs one game's pre-game rating difference (home minus away)
// with its realized score margin (home minus away).
type Sample struct {
	RatingDiff float64
	Margin     float64
}

// Fit is the result of an ordinary least squares regression
// margin ~ slope*ratingDiff + intercept.
type Fit struct {
	// Slope is in points per rating unit.
	Slope float64
	// SlopePer100 rescales the slope to points per 100 rating units, the
	// form the predictor's rating-to-points constant uses.
	SlopePer100 float64
	// Intercept is the home advantage in points.
	Intercept float64
	// R2 is the goodness of fit, 0 when the input has no variance.
	R2      float64
	Samples int
}

// Calibrate runs OLS over the samples. Degenerate input (fewer than two
// samples, or zero variance in rating diff) yields a zero fit rather than
// a division by zero. Offline, one-shot; not on the per-game hot path.
func Calibrate(samples []Sample) Fit {
	n := len(samples)
	if n < 2 {
		return Fit{Samples: n}
	}

	var sumX, sumY float64
	for _, s := range samples {
		sumX += s.RatingDiff
		sumY += s.Margin
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy float64
	for _, s := range samples {
		dx := s.RatingDiff - meanX
		sxx += dx * dx
		sxy += dx * (s.Margin - meanY)
	}
	if sxx == 0 {
		return Fit{Samples: n}
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for _, s := range samples {
		pred := slope*s.RatingDiff + intercept
		ssRes += (s.Margin - pred) * (s.Margin - pred)
		ssTot += (s.Margin - meanY) * (s.Margin - meanY)
	}
	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return Fit{
		Slope:       slope,
		SlopePer100: slope * 100,
		Intercept:   intercept,
		R2:          r2,
		Samples:     n,
	}
}
