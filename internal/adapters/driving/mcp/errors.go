// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// KCC assistant. It lets AI assistants ask farming questions, check readiness
// and trigger rebuilds.
package mcp

import "errors"

// ErrMissingRouter is returned when the query router is not provided.
var ErrMissingRouter = errors.New("mcp: query router is required")
