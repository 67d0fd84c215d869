// Package migrations holds the schema migrations the SQLite history store
// applies on startup, in lexical filename order.
package migrations

import "embed"

// FS exposes the .sql migration files embedded at build time.
//
//go:embed *.sql
var FS embed.FS
