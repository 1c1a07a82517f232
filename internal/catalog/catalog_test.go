package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chemquest/internal/combat"
)

const twoBosses = `
bosses:
  - id: b2
    name: Second
    level: 2
    base_hp: 300
    quiz_id: reactions
    special_moves:
      - id: slam
        name: Slam
        damage: 20
        category: attack
  - id: b1
    name: First
    base_hp: 100
    quiz_id: elements
    special_moves:
      - id: fizz
        name: Fizz
        effect: burn
        damage: 5
        duration: 2
        cooldown: 2
        category: attack
`

func TestDefaultCatalogIsValid(t *testing.T) {
	bosses := Default()
	if len(bosses) < 3 {
		t.Fatalf("expected at least 3 bosses, got %d", len(bosses))
	}
	for _, b := range bosses {
		if len(b.SpecialMoves) == 0 {
			t.Fatalf("boss %s has no moves", b.ID)
		}
	}
}

func TestParseDefaultsLevelAndOrders(t *testing.T) {
	bosses, err := Parse([]byte(twoBosses))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := New(bosses)
	list := c.List()
	if len(list) != 2 || list[0].ID != "b1" || list[1].ID != "b2" {
		t.Fatalf("expected bosses ordered by level, got %+v", list)
	}
	b1, ok := c.Get("b1")
	if !ok || b1.Level != 1 {
		t.Fatalf("expected b1 with default level 1, got %+v", b1)
	}
	if b1.SpecialMoves[0].Effect != combat.EffectBurn {
		t.Fatalf("expected burn move, got %+v", b1.SpecialMoves[0])
	}
}

func TestParseAcceptsJSON(t *testing.T) {
	doc := `{"bosses":[{"id":"j","name":"Json","base_hp":50,"quiz_id":"elements","special_moves":[{"id":"m","name":"M","category":"defend","effect":"defense"}]}]}`
	bosses, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if bosses[0].SpecialMoves[0].Category != combat.IntentDefend {
		t.Fatalf("unexpected move %+v", bosses[0].SpecialMoves[0])
	}
}

func TestValidateRejects(t *testing.T) {
	valid := func() combat.Boss {
		return combat.Boss{ID: "x", Name: "X", Level: 1, BaseHP: 10, QuizID: "q", SpecialMoves: []combat.SpecialMove{
			{ID: "m", Name: "M", Category: combat.IntentAttack},
		}}
	}
	cases := map[string]func(b *combat.Boss){
		"no hp":            func(b *combat.Boss) { b.BaseHP = 0 },
		"no quiz":          func(b *combat.Boss) { b.QuizID = "" },
		"bad category":     func(b *combat.Boss) { b.SpecialMoves[0].Category = "heal" },
		"bad effect":       func(b *combat.Boss) { b.SpecialMoves[0].Effect = "freeze" },
		"status no turns":  func(b *combat.Boss) { b.SpecialMoves[0].Effect = combat.EffectBurn },
		"reserved move id": func(b *combat.Boss) { b.SpecialMoves[0].ID = combat.BasicAttackID },
		"phases inverted":  func(b *combat.Boss) { b.Phases = combat.PhaseThresholds{Two: 0.2, Three: 0.5} },
		"enrage range":     func(b *combat.Boss) { b.EnrageThreshold = 1.5 },
	}
	for name, mutate := range cases {
		b := valid()
		mutate(&b)
		if err := Validate([]combat.Boss{b}); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := Validate([]combat.Boss{valid(), valid()}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if err := Validate([]combat.Boss{valid()}); err != nil {
		t.Fatalf("expected valid boss, got %v", err)
	}
}

func TestReplaceKeepsCatalogOnError(t *testing.T) {
	c := New(Default())
	before := len(c.List())
	if err := c.Replace(nil); err == nil {
		t.Fatalf("expected empty catalog to be rejected")
	}
	if len(c.List()) != before {
		t.Fatalf("catalog changed after failed replace")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bosses.yaml")
	if err := os.WriteFile(path, defaultBosses, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	bosses, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := New(bosses)

	w, err := NewWatcher(path, c)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	if err := os.WriteFile(path, []byte(twoBosses), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}

	select {
	case err := <-w.Reloaded():
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
	if _, ok := c.Get("b2"); !ok {
		t.Fatalf("expected reloaded catalog to contain b2")
	}
}

func TestWatcherLoadsLastWriteOfBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bosses.yaml")
	if err := os.WriteFile(path, defaultBosses, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	bosses, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c := New(bosses)

	w, err := NewWatcher(path, c)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	// A half-written file followed quickly by the finished one.
	if err := os.WriteFile(path, []byte(twoBosses[:40]), 0o644); err != nil {
		t.Fatalf("write partial catalog: %v", err)
	}
	time.Sleep(reloadDebounce / 3)
	if err := os.WriteFile(path, []byte(twoBosses), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-w.Reloaded():
			if err != nil {
				continue
			}
		case <-deadline:
			t.Fatalf("final file never loaded; catalog has %d bosses", len(c.List()))
		}
		break
	}
	if got := c.List(); len(got) != 2 || got[0].ID != "b1" {
		t.Fatalf("unexpected catalog %+v", got)
	}
}

func TestSchemaDescribesCatalog(t *testing.T) {
	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	doc := string(data)
	for _, want := range []string{"ChemQuest Boss Catalog", "special_moves", "enrage_threshold", "corrosion"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("schema missing %q", want)
		}
	}

	out := filepath.Join(t.TempDir(), "schema", "bosses.schema.json")
	if err := WriteSchema(out); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("schema not written: %v", err)
	}
}
