// Package report renders tournament reports as text, JSON or PDF. The
// reporting flags pick which sections appear; JSON always carries the whole
// report.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// Format selects a writer
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat converts a name to a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatPDF:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.InvalidArgumentf("unknown report format %q, expected text, json or pdf", s)
	}
}

// Write renders the report in the given format. Sections apply to text and
// PDF output only.
func Write(w io.Writer, format Format, r *arena.Report, sections arena.Reporting) error {
	if r == nil {
		return errors.InvalidArgument("report is required")
	}

	switch format {
	case FormatText, "":
		return WriteText(w, r, sections)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatPDF:
		return WritePDF(w, r, sections)
	default:
		return errors.InvalidArgumentf("unknown report format %q", format)
	}
}

// table is one rendered section
type table struct {
	title  string
	header []string
	rows   [][]string
}

// tables lays out the selected sections in a fixed order
func tables(r *arena.Report, sections arena.Reporting) []table {
	out := []table{summary(r)}

	if sections.Stats {
		out = append(out, yearTable(r))
	}
	if sections.Kills {
		out = append(out,
			tallyTable("Monsters slain", "Race", r.MonsterKills),
			tallyTable("Fighters slain by", "Slayer", r.FighterDeaths))
	}
	if sections.TotalKills {
		out = append(out, killTotals(r))
	}
	if sections.XPAwards {
		out = append(out, awardTable(r))
	}
	if sections.Details {
		out = append(out, fighterTable(r))
	}
	if sections.YearEnd {
		out = append(out, finalStatus(r))
	}

	return out
}

func summary(r *arena.Report) table {
	o := r.Options
	return table{
		title: "Arena",
		rows: [][]string{
			{"Seed", strconv.FormatUint(r.Seed, 10)},
			{"Mode", string(o.Mode)},
			{"Years", strconv.Itoa(o.Years)},
			{"Fights per year", strconv.Itoa(o.FightsPerYear)},
			{"Fighters", strconv.Itoa(o.Fighters)},
			{"Party size", strconv.Itoa(o.PartySize)},
			{"Start level", strconv.Itoa(o.StartLevel)},
			{"Armor", o.Armor.String()},
			{"Treasure", yesNo(o.Treasure)},
			{"Replace dead", yesNo(o.ReplaceDead)},
		},
	}
}

func yearTable(r *arena.Report) table {
	t := table{
		title:  "Years",
		header: []string{"Year", "Fights", "Deaths", "Recruits", "Survivors", "Kills", "Avg level", "Top level"},
	}
	for _, y := range r.Years {
		t.rows = append(t.rows, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Fights),
			strconv.Itoa(y.Deaths),
			strconv.Itoa(y.Recruits),
			strconv.Itoa(y.Survivors),
			strconv.Itoa(y.TotalKills),
			fmt.Sprintf("%.2f", y.AverageLevel),
			strconv.Itoa(y.HighestLevel),
		})
	}
	return t
}

func tallyTable(title, label string, tallies []arena.RaceTally) table {
	t := table{title: title, header: []string{label, "Count"}}
	for _, tally := range tallies {
		t.rows = append(t.rows, []string{tally.Race, strconv.Itoa(tally.Count)})
	}
	return t
}

func killTotals(r *arena.Report) table {
	tot := r.Totals
	return table{
		title: "Kill totals",
		rows: [][]string{
			{"Fights", strconv.Itoa(tot.Fights)},
			{"Wins", strconv.Itoa(tot.Wins)},
			{"Mutual destruction", strconv.Itoa(tot.MutualDestruction)},
			{"Monsters slain", strconv.Itoa(tot.MonsterKills)},
			{"Monster XP", strconv.Itoa(tot.MonsterXP)},
			{"Treasure XP", strconv.Itoa(tot.TreasureXP)},
		},
	}
}

func awardTable(r *arena.Report) table {
	t := table{
		title:  "Experience awards",
		header: []string{"Year", "Fight", "Fighter", "XP", "Level"},
	}
	for _, a := range r.XPAwards {
		t.rows = append(t.rows, []string{
			strconv.Itoa(a.Year),
			strconv.Itoa(a.Fight),
			a.FighterID,
			strconv.Itoa(a.XP),
			strconv.Itoa(a.Level),
		})
	}
	return t
}

func fighterTable(r *arena.Report) table {
	t := table{
		title:  "Fighters",
		header: []string{"ID", "Name", "Align", "Level", "XP", "HP", "AC", "Fights", "Wins", "Kills", "Years", "Status"},
	}
	for _, f := range r.Fighters {
		t.rows = append(t.rows, []string{
			f.ID,
			f.Name,
			f.Alignment,
			strconv.Itoa(f.Level),
			strconv.Itoa(f.XP),
			fmt.Sprintf("%d/%d", f.HitPoints, f.MaxHitPoints),
			strconv.Itoa(f.ArmorClass),
			strconv.Itoa(f.Fights),
			strconv.Itoa(f.Wins),
			strconv.Itoa(f.Kills),
			strconv.Itoa(f.YearsSurvived),
			status(f),
		})
	}
	return t
}

func finalStatus(r *arena.Report) table {
	tot := r.Totals
	highest := strconv.Itoa(tot.HighestLevel)
	if tot.HighestLevelID != "" {
		highest = fmt.Sprintf("%d (%s)", tot.HighestLevel, tot.HighestLevelID)
	}
	return table{
		title: "Final status",
		rows: [][]string{
			{"Recruited", strconv.Itoa(tot.Recruited)},
			{"Living", strconv.Itoa(tot.Living)},
			{"Dead", strconv.Itoa(tot.Dead)},
			{"Average level", fmt.Sprintf("%.2f", tot.AverageLevel)},
			{"Highest level", highest},
		},
	}
}

func status(f arena.FighterStats) string {
	if f.Alive {
		return "alive"
	}
	if f.SlainBy != "" {
		return fmt.Sprintf("died year %d (%s)", f.DiedYear, f.SlainBy)
	}
	return fmt.Sprintf("died year %d", f.DiedYear)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
