package combat

// CalculateDamageWithEffects returns the damage a correct answer deals to the boss.
//
// The base is baseDamage plus 10 per streak. Corrosion on the player cuts it by
// 10% per intensity. A defending boss multiplies it by 0.5 - 0.1*defenseBonus;
// that multiplier is not clamped, so a bonus of 5 or more zeroes the hit.
// The result is floored and never negative.
func CalculateDamageWithEffects(baseDamage, streak int, effects []StatusEffect, defending bool, defenseBonus int) int {
	damage := baseDamage + streak*10

	// Percent factors keep the floor exact.
	corrosion := 100
	if e, ok := activeEffect(effects, EffectCorrosion); ok {
		corrosion = 100 - 10*e.Intensity
	}
	guard := 100
	if defending {
		guard = 50 - 10*defenseBonus
	}

	scaled := damage * corrosion * guard
	if scaled <= 0 {
		return 0
	}
	return scaled / 10000
}
