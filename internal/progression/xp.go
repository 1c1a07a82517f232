package progression

import "chemquest/internal/domain"

// QuestionTimeLimit is the per-question countdown in seconds.
const QuestionTimeLimit = 30

const (
	basePoints          = 100
	timedBonusPerSecond = 5
)

// CalculateBossXP returns XP earned from a boss battle:
// floor(floor(damage/2) * (1 + level/10) + streak*2 + timeBonus/10).
// Negative damage or time bonus counts as zero, so the result is never negative.
func CalculateBossXP(damage, bossLevel, streak, timeBonus int) int {
	if damage < 0 {
		damage = 0
	}
	half := damage / 2
	xp := half*(10+bossLevel)/10 + streak*2 + max(0, timeBonus)/10
	return max(0, xp)
}

// StreakMultiplier scales points for consecutive correct answers.
func StreakMultiplier(streak int) int {
	switch {
	case streak >= 7:
		return 5
	case streak >= 5:
		return 3
	case streak >= 3:
		return 2
	default:
		return 1
	}
}

// CalculatePoints scores one answer. streak includes the answer being scored.
// Timed games add a bonus for every second left on the clock.
func CalculatePoints(correct bool, streak int, mode domain.GameMode, secondsLeft int) int {
	if !correct {
		return 0
	}
	points := basePoints * StreakMultiplier(streak)
	if mode == domain.ModeTimed {
		points += timedBonusPerSecond * min(QuestionTimeLimit, max(0, secondsLeft))
	}
	return points
}

// GameXP is the XP awarded when a solo game finishes.
func GameXP(correct, score int) int {
	return max(0, correct*10+score/100)
}

// GameCoins is the currency awarded when a solo game finishes.
func GameCoins(score int) int {
	return max(0, score/50)
}

// BossRewards returns the coins and gems for a boss attempt.
// Gems are only awarded for a victory.
func BossRewards(damage, bossLevel int, victory bool) (coins, gems int) {
	coins = max(0, damage) / 10
	if victory {
		coins += 25 * max(1, bossLevel)
		gems = max(1, bossLevel)
	}
	return coins, gems
}
