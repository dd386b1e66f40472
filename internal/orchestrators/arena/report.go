package arena

import (
	"sort"
)

// Report is the plain-data result of a tournament. It is never formatted
// here; see the report package for writers.
type Report struct {
	Seed     uint64         `json:"seed"`
	Options  Options        `json:"options"`
	Years    []YearStats    `json:"years"`
	Fighters []FighterStats `json:"fighters"`
	// MonsterKills counts monsters slain by the fighters, by race
	MonsterKills []RaceTally `json:"monster_kills,omitempty"`
	// FighterDeaths counts fallen fighters by the race of their slayer
	FighterDeaths []RaceTally `json:"fighter_deaths,omitempty"`
	XPAwards      []XPAward   `json:"xp_awards,omitempty"`
	Totals        Totals      `json:"totals"`
}

// YearStats is the pool's state at the end of a year
type YearStats struct {
	Year         int     `json:"year"`
	Fights       int     `json:"fights"`
	Deaths       int     `json:"deaths"`
	Recruits     int     `json:"recruits"`
	Survivors    int     `json:"survivors"`
	TotalKills   int     `json:"total_kills"`
	AverageLevel float64 `json:"average_level"`
	HighestLevel int     `json:"highest_level"`
}

// FighterStats is one fighter's record across the run
type FighterStats struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Alignment     string `json:"alignment"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	HitPoints     int    `json:"hit_points"`
	MaxHitPoints  int    `json:"max_hit_points"`
	ArmorClass    int    `json:"armor_class"`
	Fights        int    `json:"fights"`
	Wins          int    `json:"wins"`
	Kills         int    `json:"kills"`
	YearsSurvived int    `json:"years_survived"`
	RecruitedYear int    `json:"recruited_year"`
	Alive         bool   `json:"alive"`
	DiedYear      int    `json:"died_year,omitempty"`
	SlainBy       string `json:"slain_by,omitempty"`
}

// RaceTally counts events by race
type RaceTally struct {
	Race  string `json:"race"`
	Count int    `json:"count"`
}

// XPAward records experience granted to one fighter after a win
type XPAward struct {
	Year      int    `json:"year"`
	Fight     int    `json:"fight"`
	FighterID string `json:"fighter_id"`
	XP        int    `json:"xp"`
	Level     int    `json:"level"`
}

// Totals summarize the whole run
type Totals struct {
	Fights            int     `json:"fights"`
	Recruited         int     `json:"recruited"`
	Living            int     `json:"living"`
	Dead              int     `json:"dead"`
	Wins              int     `json:"wins"`
	MutualDestruction int     `json:"mutual_destruction"`
	MonsterKills      int     `json:"monster_kills"`
	MonsterXP         int     `json:"monster_xp"`
	TreasureXP        int     `json:"treasure_xp"`
	AverageLevel      float64 `json:"average_level"`
	HighestLevel      int     `json:"highest_level"`
	HighestLevelID    string  `json:"highest_level_id,omitempty"`
}

// tally counts by race and renders in a stable order
type tally map[string]int

// sorted orders by count descending, then race
func (t tally) sorted() []RaceTally {
	if len(t) == 0 {
		return nil
	}
	out := make([]RaceTally, 0, len(t))
	for race, n := range t {
		out = append(out, RaceTally{Race: race, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Race < out[j].Race
	})
	return out
}

func (t tally) total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}
