// Package migrations embeds the SQLite schema for the run archive.
package migrations

import "embed"

// FS contains the embedded SQLite migrations, applied in name order.
//
//go:embed *.sql
var FS embed.FS
