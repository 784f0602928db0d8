// Package migrations embeds the SQL migrations of the PostgreSQL backend.
package migrations

import "embed"

// FS contains the goose migration files.
//
//go:embed *.sql
var FS embed.FS
