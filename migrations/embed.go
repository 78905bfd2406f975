// Package migrations embeds the SQL migration history for the leads schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
