package predictor

// ProjectFinalTotal projects a live game's final combined score from the
// current combined score and minutes elapsed, assuming scoring continues at
// the observed pace for the rest of regulation. Peripheral to the core
// model; consumed by live trackers.
func (p *Predictor) ProjectFinalTotal(currentTotal int, minutesElapsed float64) float64 {
	if minutesElapsed <= 0 {
		return p.sport.BaselineTotal
	}
	if minutesElapsed >= p.sport.RegulationMinutes {
		return float64(currentTotal)
	}
	pace := float64(currentTotal) / minutesElapsed
	return RoundTo(pace*p.sport.RegulationMinutes, p.sport.Granularity)
}
