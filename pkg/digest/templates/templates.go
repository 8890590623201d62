// Package templates embeds the digest email templates.
package templates

import "embed"

// FS holds digest.md and layouts/base.html.
//
//go:embed *.md layouts/*.html
var FS embed.FS
