// Package static embeds the web assets for the game play surface.
package static

import "embed"

//go:embed *.css *.js
var FS embed.FS
