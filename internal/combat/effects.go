package combat

import "github.com/google/uuid"

const (
	burnPerIntensity      = 10
	corrosionPerIntensity = 0.1
)

// ApplyStatusEffect adds an effect of kind to effects and returns the new list.
// An existing effect of the same kind is refreshed instead: its duration becomes
// the longer of the two and its intensity grows by one, up to MaxIntensity.
// The input slice is not modified.
func ApplyStatusEffect(effects []StatusEffect, kind EffectKind, duration, intensity int) []StatusEffect {
	if intensity <= 0 {
		intensity = 1
	}
	out := make([]StatusEffect, len(effects), len(effects)+1)
	copy(out, effects)

	for i := range out {
		if out[i].Type != kind {
			continue
		}
		if duration > out[i].TurnsRemaining {
			out[i].TurnsRemaining = duration
		}
		out[i].Intensity = min(MaxIntensity, out[i].Intensity+1)
		return out
	}

	return append(out, StatusEffect{
		ID:             uuid.NewString(),
		Type:           kind,
		TurnsRemaining: duration,
		Intensity:      min(MaxIntensity, intensity),
		JustApplied:    true,
	})
}

// EffectTick is the result of one end-of-turn pass over the player's effects.
type EffectTick struct {
	Updated         []StatusEffect `json:"updatedEffects"`
	BurnDamage      int            `json:"burnDamage"`
	IsStunned       bool           `json:"isStunned"`
	EnergyReduction float64        `json:"energyReduction"`
}

// ProcessStatusEffects resolves every active effect once, then ages them by a
// turn and drops the ones that ran out. Stun only lands on the turn it was applied.
func ProcessStatusEffects(effects []StatusEffect) EffectTick {
	var tick EffectTick
	updated := make([]StatusEffect, 0, len(effects))
	for _, e := range effects {
		switch e.Type {
		case EffectBurn:
			tick.BurnDamage += burnPerIntensity * e.Intensity
		case EffectStun:
			if e.JustApplied {
				tick.IsStunned = true
			}
		case EffectCorrosion:
			tick.EnergyReduction += corrosionPerIntensity * float64(e.Intensity)
		}
		e.JustApplied = false
		e.TurnsRemaining--
		if e.TurnsRemaining > 0 {
			updated = append(updated, e)
		}
	}
	tick.Updated = updated
	return tick
}

// activeEffect returns the effect of kind, if present.
func activeEffect(effects []StatusEffect, kind EffectKind) (StatusEffect, bool) {
	for _, e := range effects {
		if e.Type == kind {
			return e, true
		}
	}
	return StatusEffect{}, false
}
