package combatant

// fighterXPTable holds the experience needed to reach levels 2 through 10
var fighterXPTable = [...]int{2000, 4000, 8000, 16000, 32000, 64000, 120000, 240000, 360000}

// fighterXPPerLevel is the cost of each level beyond the table
const fighterXPPerLevel = 120000

// XPForLevel returns the minimum experience for a level. It is monotonically
// increasing, so level never decreases as experience accumulates.
func XPForLevel(level int) int {
	switch {
	case level <= 1:
		return 0
	case level-2 < len(fighterXPTable):
		return fighterXPTable[level-2]
	default:
		last := fighterXPTable[len(fighterXPTable)-1]
		return last + (level-1-len(fighterXPTable))*fighterXPPerLevel
	}
}

// LevelForXP returns the highest level whose threshold xp meets
func LevelForXP(xp int) int {
	level := 1
	for level < MaxLevel && xp >= XPForLevel(level+1) {
		level++
	}
	return level
}
