// Package registry is the tool dispatcher. Providers contribute tool
// descriptors and handlers; the Registry routes each call by exact name,
// checks readiness before any handler runs, applies the disabled-tools
// filter, recovers handler panics, and records call metrics.
//
// The Registry implements tools.Executor and is shared by the MCP binding
// and the one-shot CLI.
package registry

import (
	"context"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

// Provider contributes a fixed set of tools.
type Provider interface {
	// Name returns a unique identifier for this provider (e.g., "docker").
	Name() string

	// Tools returns the descriptors this provider contributes. The set
	// must not change after registration.
	Tools() []tools.Descriptor

	// Execute runs a call for one of the provider's tools.
	Execute(ctx context.Context, call tools.ToolCall) (*tools.ToolResult, error)
}

// ReadinessFunc reports whether calls can be served at all. A non-nil
// error fails every call before dispatch.
type ReadinessFunc func() error
