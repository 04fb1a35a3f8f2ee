// Package migrations embeds the numbered schema migrations of the snapshot
// database. Files are named NNN_name.up.sql and applied in order.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
