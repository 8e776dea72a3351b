// Package templates embeds the HTML template set served by internal/web.
package templates

import "embed"

//go:embed base.html pages/*.html partials/*.html
var FS embed.FS
