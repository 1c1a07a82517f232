package combat

import (
	"fmt"
	"math/rand"
)

const (
	// BasicAttackID identifies the fallback move used while every special move is cooling down.
	BasicAttackID = "basic-attack"

	slowAnswerSeconds = 20
	missStreakTrigger = 2
)

// BasicAttackDamage is the damage of the fallback move for a phase.
func BasicAttackDamage(phase int) int {
	return 30 + phase*10
}

// DetermineBossIntent picks the boss's next action. misses is the number of
// consecutive wrong answers and timeTaken the seconds spent on the last question.
// Rules are checked in order; a rule whose candidate set is empty falls through.
// It returns nil once the boss is defeated.
func DetermineBossIntent(boss Boss, st BattleState, misses int, timeTaken float64, rng *rand.Rand) *Intent {
	if st.Defeated {
		return nil
	}

	available := make([]SpecialMove, 0, len(boss.SpecialMoves))
	for _, m := range boss.SpecialMoves {
		if st.Cooldowns[m.ID] <= 0 {
			available = append(available, m)
		}
	}
	if len(available) == 0 {
		return basicAttack(st.Phase)
	}

	if timeTaken > slowAnswerSeconds {
		if m, ok := pick(rng, available, IntentDebuff); ok {
			return intentFor(m)
		}
	}
	if misses >= missStreakTrigger {
		if m, ok := pick(rng, available, IntentAttack); ok {
			return intentFor(m)
		}
	}
	switch st.Phase {
	case 3:
		if rng.Float64() < 0.7 {
			if m, ok := pick(rng, available, IntentAttack, IntentDebuff); ok {
				return intentFor(m)
			}
		}
	case 2:
		if rng.Float64() < 0.5 {
			if m, ok := pick(rng, available, IntentAttack); ok {
				return intentFor(m)
			}
		}
	}

	m, _ := pick(rng, available)
	return intentFor(m)
}

// pick draws uniformly among moves in one of the given categories, or among all moves when none are given.
func pick(rng *rand.Rand, moves []SpecialMove, categories ...IntentCategory) (SpecialMove, bool) {
	candidates := moves
	if len(categories) > 0 {
		candidates = make([]SpecialMove, 0, len(moves))
		for _, m := range moves {
			for _, c := range categories {
				if m.Category == c {
					candidates = append(candidates, m)
					break
				}
			}
		}
	}
	if len(candidates) == 0 {
		return SpecialMove{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

func intentFor(m SpecialMove) *Intent {
	in := &Intent{
		Category:    m.Category,
		MoveID:      m.ID,
		MoveName:    m.Name,
		Description: m.Description,
		Damage:      m.Damage,
	}
	if m.Effect != EffectNone {
		in.Effect = m.Effect
	}
	return in
}

func basicAttack(phase int) *Intent {
	dmg := BasicAttackDamage(phase)
	return &Intent{
		Category:    IntentAttack,
		MoveID:      BasicAttackID,
		MoveName:    "Basic Attack",
		Description: fmt.Sprintf("A plain strike for %d damage.", dmg),
		Damage:      dmg,
	}
}
