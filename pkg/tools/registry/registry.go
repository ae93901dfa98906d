package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

// Registry aggregates Providers and implements tools.Executor.
type Registry struct {
	mu sync.RWMutex

	// providers stores registered providers in insertion order.
	providers []Provider

	// toolToProvider maps tool name to the provider that owns it.
	toolToProvider map[string]Provider

	ready  ReadinessFunc
	filter tools.Filter
}

// Ensure Registry implements tools.Executor at compile time.
var _ tools.Executor = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithReadiness installs a check run before every call.
func WithReadiness(fn ReadinessFunc) Option {
	return func(r *Registry) { r.ready = fn }
}

// WithDisabled hides the named tools from listing and dispatch.
func WithDisabled(names []string) Option {
	return func(r *Registry) { r.filter = tools.NewFilter(names) }
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{toolToProvider: make(map[string]Provider)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a provider. If two providers supply a tool with the same
// name, the first registered provider wins and a warning is logged.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = append(r.providers, p)

	for _, td := range p.Tools() {
		if existing, ok := r.toolToProvider[td.Name]; ok {
			slog.Warn("tool name conflict, keeping first provider",
				"tool", td.Name,
				"winner", existing.Name(),
				"loser", p.Name(),
			)
			continue
		}
		r.toolToProvider[td.Name] = p
	}

	slog.Debug("registered tool provider", "provider", p.Name(), "tools", len(p.Tools()))
}

// Tools returns the enabled descriptors of all providers in registration
// order, with shadowed duplicates removed.
func (r *Registry) Tools() []tools.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []tools.Descriptor
	for _, p := range r.providers {
		for _, td := range p.Tools() {
			if r.toolToProvider[td.Name] == p {
				all = append(all, td)
			}
		}
	}
	return r.filter.Apply(all)
}

// Preflight runs the checks that precede dispatch: readiness first, then
// name lookup. The MCP binding calls it before the SDK resolves the tool.
// A rejection is logged and counted like a failed call.
func (r *Registry) Preflight(name string) error {
	if _, err := r.resolve(name); err != nil {
		finishCall(withCallID(tools.ToolCall{Name: name}), "", time.Now(), nil, err, false)
		return err
	}
	return nil
}

func (r *Registry) resolve(name string) (Provider, error) {
	if r.ready != nil {
		if err := r.ready(); err != nil {
			if te, ok := api.AsToolError(err); ok {
				return nil, te
			}
			return nil, api.NewMisconfiguredError(err.Error())
		}
	}

	r.mu.RLock()
	p, ok := r.toolToProvider[name]
	r.mu.RUnlock()

	if !ok || !r.filter.Allowed(name) {
		return nil, api.NewMethodNotFoundError(name)
	}
	return p, nil
}

// Execute routes the call to its provider. Every failure is returned as
// an *api.ToolError.
func (r *Registry) Execute(ctx context.Context, call tools.ToolCall) (*tools.ToolResult, error) {
	call = withCallID(call)
	start := time.Now()

	p, err := r.resolve(call.Name)
	if err != nil {
		finishCall(call, "", start, nil, err, false)
		return nil, err
	}

	result, panicked, err := runProvider(ctx, p, call)
	if err != nil {
		if _, ok := api.AsToolError(err); !ok {
			err = api.NewInternalError(err.Error())
		}
		result = nil
	} else if result == nil {
		result = tools.TextResult("")
	}

	finishCall(call, p.Name(), start, result, err, panicked)
	return result, err
}
