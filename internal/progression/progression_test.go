package progression

import (
	"testing"

	"chemquest/internal/domain"
)

func TestCalculateBossXP(t *testing.T) {
	cases := []struct {
		damage, level, streak, timeBonus int
		want                             int
	}{
		{100, 1, 0, 0, 55},
		{0, 5, 0, 0, 0},
		{101, 0, 0, 0, 50},
		{200, 3, 4, 95, 130 + 8 + 9},
		{-20, 2, 1, 0, 2},
		{100, 1, 0, -50, 55},
	}
	for _, tc := range cases {
		if got := CalculateBossXP(tc.damage, tc.level, tc.streak, tc.timeBonus); got != tc.want {
			t.Fatalf("CalculateBossXP(%d,%d,%d,%d): expected %d, got %d", tc.damage, tc.level, tc.streak, tc.timeBonus, tc.want, got)
		}
	}
}

func TestGetRankByXP(t *testing.T) {
	cases := map[int]string{
		0:      "Hydrogen",
		99:     "Hydrogen",
		100:    "Carbon",
		249:    "Carbon",
		250:    "Nitrogen",
		11999:  "Silver",
		12000:  "Gold",
		500000: "Gold",
		-5:     "Hydrogen",
	}
	for xp, want := range cases {
		if got := GetRankByXP(xp).Name; got != want {
			t.Fatalf("xp=%d: expected %s, got %s", xp, want, got)
		}
	}
}

func TestRanksAscending(t *testing.T) {
	if len(Ranks) != 10 {
		t.Fatalf("expected 10 ranks, got %d", len(Ranks))
	}
	for i := 1; i < len(Ranks); i++ {
		if Ranks[i].MinXP <= Ranks[i-1].MinXP {
			t.Fatalf("rank %s not above %s", Ranks[i].Name, Ranks[i-1].Name)
		}
	}
}

func TestCheckRankUp(t *testing.T) {
	up := CheckRankUp(90, 150)
	if !up.DidRankUp || up.Previous.Name != "Hydrogen" || up.New.Name != "Carbon" || up.XPGained != 60 {
		t.Fatalf("unexpected rank up %+v", up)
	}

	same := CheckRankUp(100, 200)
	if same.DidRankUp || same.New.Name != "Carbon" {
		t.Fatalf("expected no rank change, got %+v", same)
	}
}

func TestGetRankInfo(t *testing.T) {
	info := GetRankInfo(175)
	if info.Current.Name != "Carbon" || info.Next == nil || info.Next.Name != "Nitrogen" {
		t.Fatalf("unexpected ranks %+v", info)
	}
	if info.Progress != 50 || info.XPToNext != 75 {
		t.Fatalf("expected 50%% with 75 to go, got %d%% and %d", info.Progress, info.XPToNext)
	}

	top := GetRankInfo(20000)
	if top.Next != nil || top.Progress != 100 || top.Current.Name != "Gold" {
		t.Fatalf("expected max rank at 100%%, got %+v", top)
	}
}

func TestCalculatePoints(t *testing.T) {
	if got := CalculatePoints(true, 7, domain.ModeClassic, 0); got != 500 {
		t.Fatalf("expected 500 at streak 7, got %d", got)
	}
	if got := CalculatePoints(true, 1, domain.ModeClassic, 20); got != 100 {
		t.Fatalf("classic ignores the clock, got %d", got)
	}
	if got := CalculatePoints(true, 3, domain.ModeTimed, 10); got != 250 {
		t.Fatalf("expected 200 + 50 time bonus, got %d", got)
	}
	if got := CalculatePoints(true, 1, domain.ModeTimed, 99); got != 250 {
		t.Fatalf("time bonus should cap at the limit, got %d", got)
	}
	if got := CalculatePoints(false, 10, domain.ModeTimed, 30); got != 0 {
		t.Fatalf("wrong answers score nothing, got %d", got)
	}
}

func TestStreakMultiplier(t *testing.T) {
	want := []int{1, 1, 1, 2, 2, 3, 3, 5, 5, 5}
	for streak, m := range want {
		if got := StreakMultiplier(streak); got != m {
			t.Fatalf("streak %d: expected x%d, got x%d", streak, m, got)
		}
	}
}

func TestBossRewards(t *testing.T) {
	coins, gems := BossRewards(340, 2, true)
	if coins != 84 || gems != 2 {
		t.Fatalf("expected 84 coins and 2 gems, got %d and %d", coins, gems)
	}
	coins, gems = BossRewards(120, 2, false)
	if coins != 12 || gems != 0 {
		t.Fatalf("expected 12 coins and no gems, got %d and %d", coins, gems)
	}
}
