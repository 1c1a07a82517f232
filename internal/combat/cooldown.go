package combat

// UpdateCooldowns ages every cooldown by one turn. Entries at 1 or below are
// dropped rather than kept at zero, so a move comes back a turn before a naive
// countdown would allow. The input map is not modified.
func UpdateCooldowns(cooldowns map[string]int) map[string]int {
	out := make(map[string]int, len(cooldowns))
	for id, left := range cooldowns {
		if left > 1 {
			out[id] = left - 1
		}
	}
	return out
}
