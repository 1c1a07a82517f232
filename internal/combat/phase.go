package combat

// CheckPhaseTransition maps remaining HP to a phase: at or below 25% is phase 3,
// at or below 60% is phase 2, anything else is phase 1.
func CheckPhaseTransition(hp, maxHP int) int {
	return phaseFor(hp, maxHP, DefaultPhaseThresholds)
}

func phaseFor(hp, maxHP int, th PhaseThresholds) int {
	if maxHP <= 0 {
		return 3
	}
	ratio := float64(hp) / float64(maxHP)
	switch {
	case ratio <= th.Three:
		return 3
	case ratio <= th.Two:
		return 2
	default:
		return 1
	}
}
