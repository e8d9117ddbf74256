package appfs

import "embed"

// FS embeds the database migration files.
//
//go:embed migrations
var FS embed.FS
