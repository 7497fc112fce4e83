// Package migrations embeds the schema migration files so a binary can
// migrate its own store on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
