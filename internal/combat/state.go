package combat

import "math/rand"

const (
	// MaxPlayerHP is the player's health at the start of every battle.
	MaxPlayerHP = 100
	// MaxPlayerEnergy is the player's energy at the start of every battle.
	MaxPlayerEnergy = 100
	// MaxIntensity caps status effect stacking.
	MaxIntensity = 3
)

// StatusEffect is a timed debuff on the player. It lives only inside a BattleState.
type StatusEffect struct {
	ID             string     `json:"id"`
	Type           EffectKind `json:"type"`
	TurnsRemaining int        `json:"turnsRemaining"`
	Intensity      int        `json:"intensity"`
	// JustApplied is set on the turn the effect was first added and cleared
	// the first time the effect is processed.
	JustApplied bool `json:"justApplied,omitempty"`
}

// Intent previews the action the boss will take on the next turn.
type Intent struct {
	Category    IntentCategory `json:"category"`
	MoveID      string         `json:"moveId"`
	MoveName    string         `json:"moveName"`
	Description string         `json:"description"`
	Effect      EffectKind     `json:"effect,omitempty"`
	Damage      int            `json:"damage,omitempty"`
}

// BattleState is the mutable per-battle aggregate.
type BattleState struct {
	HP                int            `json:"hp"`
	MaxHP             int            `json:"maxHp"`
	Enraged           bool           `json:"enraged"`
	Defeated          bool           `json:"defeated"`
	Phase             int            `json:"phase"`
	Turn              int            `json:"turn"`
	Effects           []StatusEffect `json:"effects"`
	Cooldowns         map[string]int `json:"cooldowns"`
	Defending         bool           `json:"defending"`
	DefenseBonus      int            `json:"defenseBonus"`
	ConsecutiveMisses int            `json:"consecutiveMisses"`
	WrongAnswers      int            `json:"wrongAnswers"`
	LastDamage        int            `json:"lastDamage"`
	TotalDamage       int            `json:"totalDamage"`

	PlayerHP      int     `json:"playerHp"`
	PlayerEnergy  int     `json:"playerEnergy"`
	PlayerStunned bool    `json:"playerStunned"`
	PlayerDown    bool    `json:"playerDown"`
	Intent        *Intent `json:"intent,omitempty"`
}

// Over reports whether the battle has ended either way.
func (s BattleState) Over() bool {
	return s.Defeated || s.PlayerDown
}

// NewBattle creates the opening state for a fight against boss and previews its first intent.
func NewBattle(boss Boss, rng *rand.Rand) BattleState {
	st := BattleState{
		HP:           boss.BaseHP,
		MaxHP:        boss.BaseHP,
		Phase:        1,
		Cooldowns:    map[string]int{},
		PlayerHP:     MaxPlayerHP,
		PlayerEnergy: MaxPlayerEnergy,
	}
	st.Intent = DetermineBossIntent(boss, st, 0, 0, rng)
	return st
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
