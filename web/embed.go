// Package web provides the embedded static assets (CSS, JS) for the
// Stockroom pages. They are served at /static/. In development the layout
// loads HTMX from a CDN; production builds serve the vendored copy fetched
// by `make vendor`.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
