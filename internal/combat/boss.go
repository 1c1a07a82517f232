package combat

// EffectKind is the effect a special move applies when it resolves.
type EffectKind string

const (
	EffectBurn      EffectKind = "burn"
	EffectStun      EffectKind = "stun"
	EffectCorrosion EffectKind = "corrosion"
	EffectDefense   EffectKind = "defense"
	EffectNone      EffectKind = "none"
)

// IsStatus reports whether the kind lands on the player as a timed status effect.
func (k EffectKind) IsStatus() bool {
	return k == EffectBurn || k == EffectStun || k == EffectCorrosion
}

// Valid reports whether k is a known effect kind. The empty kind counts as none.
func (k EffectKind) Valid() bool {
	switch k {
	case EffectBurn, EffectStun, EffectCorrosion, EffectDefense, EffectNone, "":
		return true
	}
	return false
}

// IntentCategory groups special moves for intent selection.
type IntentCategory string

const (
	IntentAttack IntentCategory = "attack"
	IntentDefend IntentCategory = "defend"
	IntentDebuff IntentCategory = "debuff"
)

// Valid reports whether c is a known intent category.
func (c IntentCategory) Valid() bool {
	return c == IntentAttack || c == IntentDefend || c == IntentDebuff
}

// SpecialMove is an immutable boss ability from the catalogue.
type SpecialMove struct {
	ID          string         `yaml:"id" json:"id" jsonschema:"required"`
	Name        string         `yaml:"name" json:"name" jsonschema:"required"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Effect      EffectKind     `yaml:"effect" json:"effect,omitempty" jsonschema:"enum=burn,enum=stun,enum=corrosion,enum=defense,enum=none"`
	Damage      int            `yaml:"damage" json:"damage,omitempty" jsonschema:"minimum=0"`
	Duration    int            `yaml:"duration" json:"duration,omitempty" jsonschema:"minimum=0"`
	Cooldown    int            `yaml:"cooldown" json:"cooldown,omitempty" jsonschema:"minimum=0"`
	Category    IntentCategory `yaml:"category" json:"category" jsonschema:"required,enum=attack,enum=defend,enum=debuff"`
}

// PhaseThresholds are the HP ratios at which a boss enters phase 2 and phase 3.
type PhaseThresholds struct {
	Two   float64 `yaml:"two" json:"two,omitempty" jsonschema:"exclusiveMinimum=0,maximum=1"`
	Three float64 `yaml:"three" json:"three,omitempty" jsonschema:"exclusiveMinimum=0,maximum=1"`
}

// DefaultPhaseThresholds apply when a boss does not declare its own.
var DefaultPhaseThresholds = PhaseThresholds{Two: 0.60, Three: 0.25}

// Boss is a static opponent definition loaded from the catalogue.
type Boss struct {
	ID              string          `yaml:"id" json:"id" jsonschema:"required"`
	Name            string          `yaml:"name" json:"name" jsonschema:"required"`
	Element         string          `yaml:"element" json:"element,omitempty"`
	Level           int             `yaml:"level" json:"level" jsonschema:"minimum=1"`
	BaseHP          int             `yaml:"base_hp" json:"base_hp" jsonschema:"required,exclusiveMinimum=0"`
	EnrageThreshold float64         `yaml:"enrage_threshold" json:"enrage_threshold,omitempty" jsonschema:"minimum=0,maximum=1"`
	PlayerDamage    int             `yaml:"player_damage" json:"player_damage,omitempty" jsonschema:"minimum=0"`
	QuizID          string          `yaml:"quiz_id" json:"quiz_id" jsonschema:"required"`
	Phases          PhaseThresholds `yaml:"phases" json:"phases,omitempty"`
	SpecialMoves    []SpecialMove   `yaml:"special_moves" json:"special_moves"`
}

// DefaultPlayerDamage is the base damage of a correct answer when the boss does not override it.
const DefaultPlayerDamage = 50

// StrikeDamage returns the base damage a correct answer deals to this boss.
func (b Boss) StrikeDamage() int {
	if b.PlayerDamage > 0 {
		return b.PlayerDamage
	}
	return DefaultPlayerDamage
}

// Move looks up a special move by id.
func (b Boss) Move(id string) (SpecialMove, bool) {
	for _, m := range b.SpecialMoves {
		if m.ID == id {
			return m, true
		}
	}
	return SpecialMove{}, false
}

// PhaseAt returns the phase for hp using the boss's thresholds, falling back to the defaults.
func (b Boss) PhaseAt(hp, maxHP int) int {
	th := b.Phases
	if th.Two <= 0 {
		th.Two = DefaultPhaseThresholds.Two
	}
	if th.Three <= 0 {
		th.Three = DefaultPhaseThresholds.Three
	}
	return phaseFor(hp, maxHP, th)
}
