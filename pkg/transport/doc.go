// Package transport holds the HTTP middleware shared by the network
// transports of the MCP bridge.
//
// # Middleware
//
// Middleware wraps an http.Handler. Chain composes several so that the
// first listed runs outermost. Built-in middleware provides panic
// recovery, request ID assignment (X-Request-ID), and structured access
// logging via log/slog.
//
// The stdio transport has no HTTP layer and uses none of this.
package transport
