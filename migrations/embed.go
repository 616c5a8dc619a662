// Package migrations embeds the versioned schema files for the settings store.
package migrations

import "embed"

// FS holds the migration files, one directory per backend.
//
//go:embed sqlite/*.sql
var FS embed.FS
