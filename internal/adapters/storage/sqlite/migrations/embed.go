// Package migrations contiene el esquema SQLite embebido para goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
