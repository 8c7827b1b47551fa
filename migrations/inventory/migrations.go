// Package inventory embeds the goose migrations for the inventory schema.
package inventory

import "embed"

// FS holds the *.sql migrations applied by migrator.RunMigrations.
//
//go:embed *.sql
var FS embed.FS
