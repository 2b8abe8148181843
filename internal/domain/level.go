package domain

import "math"

// LevelForXP derives a user's level from lifetime XP:
// level = 1 + floor(sqrt(totalXP / 100))
func LevelForXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	return 1 + int(math.Floor(math.Sqrt(float64(totalXP)/100.0)))
}
