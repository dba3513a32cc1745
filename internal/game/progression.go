package game

import (
	"math"

	"homestead/internal/economy"
)

// XPForLevel returns the XP needed to clear the given player level. The
// curve is geometric, so it is strictly increasing in level.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(economy.BaseXPForLevel * math.Pow(economy.XPMultiplier, float64(level-1))))
}

// LevelFromXP returns the player level implied by cumulative XP, capped at
// the maximum level.
func LevelFromXP(xp int) int {
	level := 1
	total := 0
	for level < economy.MaxPlayerLevel && total+XPForLevel(level) <= xp {
		total += XPForLevel(level)
		level++
	}
	return level
}

// XPProgress describes progress through the current level.
type XPProgress struct {
	Current    int `json:"current"`
	Needed     int `json:"needed"`
	Percentage int `json:"percentage"`
}

// ProgressForXP computes progress into the current level. At the level cap
// Needed is 0 and Percentage reads 100.
func ProgressForXP(xp, level int) XPProgress {
	if level >= economy.MaxPlayerLevel {
		return XPProgress{Current: xp, Needed: 0, Percentage: 100}
	}
	total := 0
	for i := 1; i < level; i++ {
		total += XPForLevel(i)
	}
	into := xp - total
	needed := XPForLevel(level)
	pct := 0
	if needed > 0 {
		pct = int(math.Floor(float64(into) / float64(needed) * 100))
	}
	return XPProgress{Current: into, Needed: needed, Percentage: clampInt(pct, 0, 100)}
}

// Crop growth stages ordered from least to most mature.
const (
	StagePlanted  = "PLANTED"
	StageSeedling = "SEEDLING"
	StageGrowing  = "GROWING"
	StageMature   = "MATURE"
	StageReady    = "READY"
)

// CropGrowthStage classifies elapsed growing days against the crop's total.
// Thresholds are inclusive lower bounds on the progress ratio.
func CropGrowthStage(daysGrowing, totalGrowthDays int) string {
	if totalGrowthDays <= 0 {
		return StageReady
	}
	progress := float64(daysGrowing) / float64(totalGrowthDays)
	switch {
	case progress >= 1.0:
		return StageReady
	case progress >= 0.8:
		return StageMature
	case progress >= 0.5:
		return StageGrowing
	case progress >= 0.2:
		return StageSeedling
	default:
		return StagePlanted
	}
}

// HorseValuation derives a horse's market worth from experience, level and
// health. It never returns less than the valuation floor.
func HorseValuation(baseValue, xp, level, health int) int {
	xpValue := xp * 10
	levelValue := (level - 1) * 500
	healthPenalty := (100 - health) * 5
	value := baseValue + xpValue + levelValue - healthPenalty
	return maxInt(economy.HorseValueFloor, value)
}

// HorseNextThreshold returns the cumulative XP needed for the next horse
// level, or -1 at the level cap.
func HorseNextThreshold(level int) int {
	if level >= economy.MaxHorseLevel {
		return -1
	}
	return economy.HorseXPThresholds[level+1]
}
