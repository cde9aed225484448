// Package migrations contiene el esquema de Postgres embebido para goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
