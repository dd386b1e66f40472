package arena

import (
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/combatant"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Defaults for a tournament
const (
	DefaultYears         = 50
	DefaultFightsPerYear = 12
	DefaultFighters      = 100
	DefaultStartLevel    = 1
	DefaultPartySize     = 1
	DefaultXPPerLevel    = 100
	DefaultArmor         = equipment.ArmorPlate
	DefaultReporting     = "s"
)

// Mode selects who the fighters face
type Mode string

// Fight modes
const (
	ModeManVsMan     Mode = "man-vs-man"
	ModeManVsMonster Mode = "man-vs-monster"
)

// String returns the mode name
func (m Mode) String() string {
	return string(m)
}

// IsValid reports whether m is a known mode
func (m Mode) IsValid() bool {
	return m == ModeManVsMan || m == ModeManVsMonster
}

// ParseMode accepts a mode name or the short forms "man" and "monster"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "man-vs-man", "man", "mvm":
		return ModeManVsMan, nil
	case "man-vs-monster", "monster", "monsters":
		return ModeManVsMonster, nil
	default:
		return "", errors.InvalidConfigurationf("unknown fight mode %q", s)
	}
}

// Reporting selects the report sections to produce. Its text form is a
// code of flag letters, e.g. "sdy".
type Reporting struct {
	// s: per-fighter statistics
	Stats bool
	// d: per-fighter details
	Details bool
	// k: kills tallied by monster race
	Kills bool
	// t: total monster kills
	TotalKills bool
	// x: every experience award
	XPAwards bool
	// y: year-end status
	YearEnd bool
}

const reportingFlags = "sdktxy"

// ParseReporting reads a flag code. The empty code turns every section off.
func ParseReporting(code string) (Reporting, error) {
	var r Reporting
	for _, c := range code {
		switch c {
		case 's':
			r.Stats = true
		case 'd':
			r.Details = true
		case 'k':
			r.Kills = true
		case 't':
			r.TotalKills = true
		case 'x':
			r.XPAwards = true
		case 'y':
			r.YearEnd = true
		default:
			return Reporting{}, errors.InvalidConfigurationf("unknown reporting flag %q, expected any of %q", c, reportingFlags)
		}
	}
	return r, nil
}

// String renders the flag code in canonical order
func (r Reporting) String() string {
	var b strings.Builder
	for _, f := range []struct {
		on bool
		c  byte
	}{
		{r.Stats, 's'}, {r.Details, 'd'}, {r.Kills, 'k'},
		{r.TotalKills, 't'}, {r.XPAwards, 'x'}, {r.YearEnd, 'y'},
	} {
		if f.on {
			b.WriteByte(f.c)
		}
	}
	return b.String()
}

// MarshalText encodes the flag code
func (r Reporting) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a flag code
func (r *Reporting) UnmarshalText(text []byte) error {
	parsed, err := ParseReporting(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Options configure a tournament
type Options struct {
	Years         int                 `json:"years"`
	FightsPerYear int                 `json:"fights_per_year"`
	Fighters      int                 `json:"fighters"`
	StartLevel    int                 `json:"start_level"`
	Armor         equipment.ArmorType `json:"armor"`
	PartySize     int                 `json:"party_size"`
	Mode          Mode                `json:"mode"`
	// Treasure adds the monsters' treasure experience to awards
	Treasure    bool `json:"treasure"`
	ReplaceDead bool `json:"replace_dead"`
	// XPPerLevel is awarded per level of each defeated fighter
	XPPerLevel int       `json:"xp_per_level"`
	MaxRounds  int       `json:"max_rounds"`
	Reporting  Reporting `json:"reporting"`
}

// DefaultOptions returns every option at its default
func DefaultOptions() Options {
	reporting, _ := ParseReporting(DefaultReporting)
	return Options{
		Years:         DefaultYears,
		FightsPerYear: DefaultFightsPerYear,
		Fighters:      DefaultFighters,
		StartLevel:    DefaultStartLevel,
		Armor:         DefaultArmor,
		PartySize:     DefaultPartySize,
		Mode:          ModeManVsMan,
		ReplaceDead:   true,
		XPPerLevel:    DefaultXPPerLevel,
		MaxRounds:     combat.DefaultMaxRounds,
		Reporting:     reporting,
	}
}

// Validate checks every option before any simulation state exists
func (o *Options) Validate() error {
	vb := errors.NewConfigValidationBuilder()

	errors.ValidateMin("Years", o.Years, 1, vb)
	errors.ValidateMin("FightsPerYear", o.FightsPerYear, 1, vb)
	errors.ValidateMin("Fighters", o.Fighters, 1, vb)
	errors.ValidateRange("StartLevel", o.StartLevel, 1, combatant.MaxLevel, vb)
	errors.ValidateMin("PartySize", o.PartySize, 1, vb)
	errors.ValidateMin("XPPerLevel", o.XPPerLevel, 0, vb)
	errors.ValidateMin("MaxRounds", o.MaxRounds, 1, vb)

	armors := equipment.BodyArmorTypes()
	allowed := make([]string, len(armors))
	for i, a := range armors {
		allowed[i] = a.String()
	}
	errors.ValidateEnum("Armor", string(o.Armor), allowed, vb)
	errors.ValidateEnum("Mode", string(o.Mode), []string{ModeManVsMan.String(), ModeManVsMonster.String()}, vb)

	if o.PartySize > o.Fighters && o.Fighters >= 1 {
		vb.Fieldf("PartySize", "must not exceed the %d fighters in the pool", o.Fighters)
	}

	return vb.Build()
}
