package simulation

// GapWidth returns the obstacle gap for a score. It shrinks by GapDecrease
// every GapScoreStep points and never drops below MinGap.
func (d DifficultyConfig) GapWidth(score int) float64 {
	steps := float64(score / d.GapScoreStep)
	return max(d.InitialGap-steps*d.GapDecrease, d.MinGap)
}

// FireInterval returns the ticks between enemy shots for a score. It shrinks
// by FireRateIncrease every FireScoreStep points and never drops below
// MinFireRate.
func (d DifficultyConfig) FireInterval(score int) int {
	steps := score / d.FireScoreStep
	return max(d.InitialFireRate-steps*d.FireRateIncrease, d.MinFireRate)
}
