package progression

// Rank is one step of the element ladder players climb with XP.
type Rank struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	MinXP  int    `json:"minXp"`
}

// Ranks is ordered by ascending MinXP.
var Ranks = []Rank{
	{Name: "Hydrogen", Symbol: "H", MinXP: 0},
	{Name: "Carbon", Symbol: "C", MinXP: 100},
	{Name: "Nitrogen", Symbol: "N", MinXP: 250},
	{Name: "Oxygen", Symbol: "O", MinXP: 500},
	{Name: "Neon", Symbol: "Ne", MinXP: 1000},
	{Name: "Sodium", Symbol: "Na", MinXP: 2000},
	{Name: "Silicon", Symbol: "Si", MinXP: 3500},
	{Name: "Iron", Symbol: "Fe", MinXP: 5500},
	{Name: "Silver", Symbol: "Ag", MinXP: 8000},
	{Name: "Gold", Symbol: "Au", MinXP: 12000},
}

// GetRankByXP returns the highest rank whose threshold is at or below xp.
func GetRankByXP(xp int) Rank {
	return Ranks[rankIndex(xp)]
}

func rankIndex(xp int) int {
	idx := 0
	for i, r := range Ranks {
		if xp >= r.MinXP {
			idx = i
		}
	}
	return idx
}

// RankUp describes the rank change caused by an XP gain.
type RankUp struct {
	DidRankUp bool `json:"didRankUp"`
	Previous  Rank `json:"previousRank"`
	New       Rank `json:"newRank"`
	XPGained  int  `json:"xpGained"`
}

// CheckRankUp compares the ranks held before and after an XP change.
func CheckRankUp(previousXP, newXP int) RankUp {
	prev, next := rankIndex(previousXP), rankIndex(newXP)
	return RankUp{
		DidRankUp: next > prev,
		Previous:  Ranks[prev],
		New:       Ranks[next],
		XPGained:  newXP - previousXP,
	}
}

// RankInfo is the player's position on the ladder.
type RankInfo struct {
	Current  Rank  `json:"current"`
	Next     *Rank `json:"next,omitempty"`
	XP       int   `json:"xp"`
	XPToNext int   `json:"xpToNext"`
	// Progress is the percentage of the way to the next rank, 100 at the top.
	Progress int `json:"progress"`
}

// GetRankInfo reports the current rank, the next one and progress towards it.
func GetRankInfo(xp int) RankInfo {
	idx := rankIndex(xp)
	info := RankInfo{Current: Ranks[idx], XP: xp, Progress: 100}
	if idx+1 >= len(Ranks) {
		return info
	}
	next := Ranks[idx+1]
	span := next.MinXP - info.Current.MinXP
	info.Next = &next
	info.XPToNext = next.MinXP - xp
	info.Progress = min(100, max(0, (xp-info.Current.MinXP)*100/span))
	return info
}
