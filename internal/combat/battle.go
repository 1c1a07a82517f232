package combat

import (
	"math"
	"math/rand"
)

// enragedDamagePct scales boss move damage once the boss is enraged.
const enragedDamagePct = 150

// TurnInput is the player's side of a turn.
type TurnInput struct {
	Correct bool
	// Streak is the run of correct answers before this one.
	Streak    int
	TimeTaken float64
}

// TurnOutcome reports everything that happened during one turn.
type TurnOutcome struct {
	Turn          int        `json:"turn"`
	Stunned       bool       `json:"stunned"`
	DamageDealt   int        `json:"damageDealt"`
	BossAction    *Intent    `json:"bossAction,omitempty"`
	DamageTaken   int        `json:"damageTaken"`
	AppliedEffect EffectKind `json:"appliedEffect,omitempty"`
	BurnDamage    int        `json:"burnDamage"`
	EnergyLost    int        `json:"energyLost"`
	Phase         int        `json:"phase"`
	PhaseChanged  bool       `json:"phaseChanged"`
	BecameEnraged bool       `json:"becameEnraged"`
	Victory       bool       `json:"victory"`
	Defeat        bool       `json:"defeat"`
	NextIntent    *Intent    `json:"nextIntent,omitempty"`
}

// ResolveTurn plays one full turn against boss and mutates st in place.
//
// Order: the player's answer strikes (skipped while stunned), phase and enrage
// are re-evaluated, the boss executes the intent it previewed, status effects
// tick, cooldowns age, and the next intent is chosen. A finished battle is left
// untouched.
func ResolveTurn(st *BattleState, boss Boss, in TurnInput, rng *rand.Rand) TurnOutcome {
	if st.Over() {
		return TurnOutcome{Turn: st.Turn, Phase: st.Phase, Victory: st.Defeated, Defeat: st.PlayerDown}
	}
	if st.Cooldowns == nil {
		st.Cooldowns = map[string]int{}
	}

	st.Turn++
	out := TurnOutcome{Turn: st.Turn}

	stunned := st.PlayerStunned
	st.PlayerStunned = false
	out.Stunned = stunned

	if in.Correct {
		st.ConsecutiveMisses = 0
		if !stunned {
			dmg := CalculateDamageWithEffects(boss.StrikeDamage(), in.Streak, st.Effects, st.Defending, st.DefenseBonus)
			before := st.HP
			st.HP = clamp(st.HP-dmg, 0, st.MaxHP)
			out.DamageDealt = before - st.HP
			st.TotalDamage += out.DamageDealt
		}
	} else {
		st.ConsecutiveMisses++
		st.WrongAnswers++
	}
	st.LastDamage = out.DamageDealt
	// A guard only absorbs the answer that follows it.
	st.Defending = false

	prevPhase := st.Phase
	if next := boss.PhaseAt(st.HP, st.MaxHP); next > st.Phase {
		st.Phase = next
	}
	out.Phase = st.Phase
	out.PhaseChanged = st.Phase != prevPhase

	if !st.Enraged && boss.EnrageThreshold > 0 && st.MaxHP > 0 &&
		float64(st.HP)/float64(st.MaxHP) <= boss.EnrageThreshold {
		st.Enraged = true
		out.BecameEnraged = true
	}

	if st.HP == 0 {
		st.Defeated = true
		st.Intent = nil
		out.Victory = true
		return out
	}

	action := st.Intent
	if action == nil {
		action = DetermineBossIntent(boss, *st, st.ConsecutiveMisses, in.TimeTaken, rng)
	}
	executeIntent(st, boss, action, &out)
	out.BossAction = action

	tick := ProcessStatusEffects(st.Effects)
	st.Effects = tick.Updated
	out.BurnDamage = tick.BurnDamage
	st.PlayerHP = clamp(st.PlayerHP-tick.BurnDamage, 0, MaxPlayerHP)
	if tick.IsStunned {
		st.PlayerStunned = true
	}
	if tick.EnergyReduction > 0 {
		lost := int(math.Round(tick.EnergyReduction * MaxPlayerEnergy))
		before := st.PlayerEnergy
		st.PlayerEnergy = clamp(st.PlayerEnergy-lost, 0, MaxPlayerEnergy)
		out.EnergyLost = before - st.PlayerEnergy
	}

	st.Cooldowns = UpdateCooldowns(st.Cooldowns)

	if st.PlayerHP == 0 {
		st.PlayerDown = true
		st.Intent = nil
		out.Defeat = true
		return out
	}

	st.Intent = DetermineBossIntent(boss, *st, st.ConsecutiveMisses, in.TimeTaken, rng)
	out.NextIntent = st.Intent
	return out
}

func executeIntent(st *BattleState, boss Boss, action *Intent, out *TurnOutcome) {
	dmg := action.Damage
	if st.Enraged {
		dmg = dmg * enragedDamagePct / 100
	}

	move, special := boss.Move(action.MoveID)
	switch {
	case action.Effect == EffectDefense:
		st.Defending = true
		st.DefenseBonus++
		out.AppliedEffect = EffectDefense
	case action.Effect.IsStatus() && special:
		st.Effects = ApplyStatusEffect(st.Effects, action.Effect, move.Duration, 1)
		out.AppliedEffect = action.Effect
	}

	if dmg > 0 {
		before := st.PlayerHP
		st.PlayerHP = clamp(st.PlayerHP-dmg, 0, MaxPlayerHP)
		out.DamageTaken = before - st.PlayerHP
	}
	if special && move.Cooldown > 0 {
		st.Cooldowns[move.ID] = move.Cooldown
	}
}
