// Package migrations holds the numbered SQL files applied by the SQLite
// store on open.
package migrations

import "embed"

// FS holds NNN_name.up.sql and NNN_name.down.sql pairs.
//
//go:embed *.sql
var FS embed.FS
