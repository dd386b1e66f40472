package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// WriteText renders the selected sections as aligned plain-text tables
func WriteText(w io.Writer, r *arena.Report, sections arena.Reporting) error {
	if r == nil {
		return errors.InvalidArgument("report is required")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, t := range tables(r, sections) {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "== %s ==\n", t.title)
		if len(t.header) > 0 {
			fmt.Fprintln(tw, strings.Join(t.header, "\t"))
		}
		if len(t.rows) == 0 {
			fmt.Fprintln(tw, "(none)")
		}
		for _, row := range t.rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}

	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}
