// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Agora. It lets AI assistants search the community platform and inspect
// recent search history.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
