package report

import (
	"encoding/json"
	"io"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// WriteJSON encodes the whole report, indented
func WriteJSON(w io.Writer, r *arena.Report) error {
	if r == nil {
		return errors.InvalidArgument("report is required")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	return nil
}
