// Package migrations embeds the goose SQL migrations applied by cmd/migrate.
package migrations

import "embed"

// Files holds the versioned goose scripts, each with Up and Down sections.
//
//go:embed *.sql
var Files embed.FS
