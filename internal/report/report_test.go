package report

import (
	"bytes"
	"testing"
	"time"

	"chemquest/internal/app"
	"chemquest/internal/domain"
	"chemquest/internal/progression"
)

func TestWriteProgressReport(t *testing.T) {
	profile := app.PlayerProfile{
		Player: domain.Player{ID: "u1", DisplayName: "Marie", XP: 320, Coins: 40, Gems: 2, BossWins: 1},
		Rank:   progression.GetRankInfo(320),
		Attempts: []domain.BossAttempt{
			{ID: "a1", BossID: "hydra-of-halogens", Victory: true, Turns: 9, DamageDealt: 400, XP: 230, Coins: 65, CreatedAt: time.Now()},
			{ID: "a2", BossID: "inferno-oxidizer", Turns: 4, DamageDealt: 120, XP: 70, Coins: 12, CreatedAt: time.Now()},
		},
	}

	var buf bytes.Buffer
	if err := WriteProgressReport(&buf, profile); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected a PDF header, got %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestWriteProgressReportTopRankNoAttempts(t *testing.T) {
	profile := app.PlayerProfile{
		Player: domain.Player{ID: "u2", DisplayName: "Dmitri", XP: 20000},
		Rank:   progression.GetRankInfo(20000),
	}
	var buf bytes.Buffer
	if err := WriteProgressReport(&buf, profile); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output")
	}
}
