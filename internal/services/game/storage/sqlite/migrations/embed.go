// Package migrations contains embedded SQL migrations for saved game storage.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
