package combat

import "math/rand"

// SimConfig drives a scripted player through a battle.
type SimConfig struct {
	// Accuracy is the chance of answering correctly, 0..1.
	Accuracy float64
	// MeanTime is the average seconds per answer; actual times vary by +-50%.
	MeanTime float64
	MaxTurns int
}

// SimResult summarizes one simulated battle.
type SimResult struct {
	Victory     bool `json:"victory"`
	Turns       int  `json:"turns"`
	DamageDealt int  `json:"damageDealt"`
	DamageTaken int  `json:"damageTaken"`
	BestStreak  int  `json:"bestStreak"`
	Stuns       int  `json:"stuns"`
	// MoveUses counts boss actions by move id.
	MoveUses map[string]int `json:"moveUses"`
}

// SimulateBattle runs a full battle against boss with answers drawn from rng.
func SimulateBattle(boss Boss, cfg SimConfig, rng *rand.Rand) SimResult {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 100
	}
	st := NewBattle(boss, rng)
	res := SimResult{MoveUses: map[string]int{}}

	streak := 0
	for !st.Over() && st.Turn < cfg.MaxTurns {
		correct := rng.Float64() < cfg.Accuracy
		taken := cfg.MeanTime * (0.5 + rng.Float64())

		out := ResolveTurn(&st, boss, TurnInput{Correct: correct, Streak: streak, TimeTaken: taken}, rng)
		if correct {
			streak++
			res.BestStreak = max(res.BestStreak, streak)
		} else {
			streak = 0
		}

		res.DamageDealt += out.DamageDealt
		res.DamageTaken += out.DamageTaken + out.BurnDamage
		if out.Stunned {
			res.Stuns++
		}
		if out.BossAction != nil {
			res.MoveUses[out.BossAction.MoveID]++
		}
	}
	res.Victory = st.Defeated
	res.Turns = st.Turn
	return res
}
