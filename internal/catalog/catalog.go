package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"chemquest/internal/combat"
	"gopkg.in/yaml.v3"
)

//go:embed default_bosses.yaml
var defaultBosses []byte

// File is the on-disk shape of a boss catalogue.
type File struct {
	Bosses []combat.Boss `yaml:"bosses" json:"bosses" jsonschema:"required"`
}

// Parse decodes and validates a catalogue. JSON input is accepted as well.
func Parse(data []byte) ([]combat.Boss, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range f.Bosses {
		if f.Bosses[i].Level == 0 {
			f.Bosses[i].Level = 1
		}
	}
	if err := Validate(f.Bosses); err != nil {
		return nil, err
	}
	return f.Bosses, nil
}

// Load reads a catalogue from path.
func Load(path string) ([]combat.Boss, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Default returns the catalogue compiled into the binary.
func Default() []combat.Boss {
	bosses, err := Parse(defaultBosses)
	if err != nil {
		panic(fmt.Sprintf("embedded boss catalog: %v", err))
	}
	return bosses
}

// Validate checks the invariants the combat engine relies on.
func Validate(bosses []combat.Boss) error {
	if len(bosses) == 0 {
		return fmt.Errorf("catalog has no bosses")
	}
	seen := make(map[string]bool, len(bosses))
	for _, b := range bosses {
		if b.ID == "" {
			return fmt.Errorf("boss %q: missing id", b.Name)
		}
		if seen[b.ID] {
			return fmt.Errorf("boss %q: duplicate id", b.ID)
		}
		seen[b.ID] = true
		if b.BaseHP <= 0 {
			return fmt.Errorf("boss %q: base_hp must be positive", b.ID)
		}
		if b.QuizID == "" {
			return fmt.Errorf("boss %q: missing quiz_id", b.ID)
		}
		if b.EnrageThreshold < 0 || b.EnrageThreshold > 1 {
			return fmt.Errorf("boss %q: enrage_threshold out of range", b.ID)
		}
		if th := b.Phases; (th.Two != 0 || th.Three != 0) && !(th.Three > 0 && th.Three < th.Two && th.Two <= 1) {
			return fmt.Errorf("boss %q: phase thresholds must satisfy 0 < three < two <= 1", b.ID)
		}
		moves := make(map[string]bool, len(b.SpecialMoves))
		for _, m := range b.SpecialMoves {
			if m.ID == "" || m.ID == combat.BasicAttackID {
				return fmt.Errorf("boss %q: invalid move id %q", b.ID, m.ID)
			}
			if moves[m.ID] {
				return fmt.Errorf("boss %q: duplicate move %q", b.ID, m.ID)
			}
			moves[m.ID] = true
			if !m.Effect.Valid() {
				return fmt.Errorf("boss %q move %q: unknown effect %q", b.ID, m.ID, m.Effect)
			}
			if !m.Category.Valid() {
				return fmt.Errorf("boss %q move %q: unknown category %q", b.ID, m.ID, m.Category)
			}
			if m.Damage < 0 || m.Duration < 0 || m.Cooldown < 0 {
				return fmt.Errorf("boss %q move %q: negative stats", b.ID, m.ID)
			}
			if m.Effect.IsStatus() && m.Duration == 0 {
				return fmt.Errorf("boss %q move %q: %s needs a duration", b.ID, m.ID, m.Effect)
			}
		}
	}
	return nil
}

// Catalog holds the active boss definitions and can be swapped at runtime.
type Catalog struct {
	mu     sync.RWMutex
	bosses map[string]combat.Boss
	order  []string
}

// New builds a catalog from already validated bosses.
func New(bosses []combat.Boss) *Catalog {
	c := &Catalog{}
	c.set(bosses)
	return c
}

// Get returns the boss with id.
func (c *Catalog) Get(id string) (combat.Boss, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bosses[id]
	return b, ok
}

// List returns bosses ordered by level, then id.
func (c *Catalog) List() []combat.Boss {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]combat.Boss, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.bosses[id])
	}
	return out
}

// Replace validates bosses and swaps them in. On error the catalog is unchanged.
func (c *Catalog) Replace(bosses []combat.Boss) error {
	if err := Validate(bosses); err != nil {
		return err
	}
	c.set(bosses)
	return nil
}

func (c *Catalog) set(bosses []combat.Boss) {
	byID := make(map[string]combat.Boss, len(bosses))
	order := make([]string, 0, len(bosses))
	for _, b := range bosses {
		byID[b.ID] = b
		order = append(order, b.ID)
	}
	sort.SliceStable(order, func(i, j int) bool {
		bi, bj := byID[order[i]], byID[order[j]]
		if bi.Level != bj.Level {
			return bi.Level < bj.Level
		}
		return bi.ID < bj.ID
	})

	c.mu.Lock()
	c.bosses = byID
	c.order = order
	c.mu.Unlock()
}
