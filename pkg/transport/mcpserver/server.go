package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/debug"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

const methodCallTool = "tools/call"

// Dispatcher is the executor the server forwards to. Preflight must run
// the same checks Execute runs before dispatch.
type Dispatcher interface {
	tools.Executor
	Preflight(name string) error
}

// Options configures the MCP server identity.
type Options struct {
	Name         string
	Version      string
	Instructions string
}

// New builds an MCP server exposing every tool d lists.
func New(d Dispatcher, opts Options) *mcp.Server {
	if opts.Name == "" {
		opts.Name = "portainer-mcp"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: opts.Name, Version: opts.Version},
		&mcp.ServerOptions{Instructions: opts.Instructions},
	)

	for _, desc := range d.Tools() {
		server.AddTool(&mcp.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: desc.InputSchema,
		}, toolHandler(d, desc.Name))
	}

	server.AddReceivingMiddleware(preflight(d))
	return server
}

// toolHandler forwards one MCP tool call to the dispatcher.
func toolHandler(d Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		call := tools.ToolCall{Name: name}
		if req != nil && req.Params != nil {
			call.Arguments = req.Params.Arguments
		}

		result, err := d.Execute(ctx, call)
		if err != nil {
			return nil, wireError(err)
		}
		return toCallToolResult(result), nil
	}
}

func toCallToolResult(r *tools.ToolResult) *mcp.CallToolResult {
	out := &mcp.CallToolResult{Content: []mcp.Content{}}
	if r == nil {
		return out
	}
	for _, c := range r.Content {
		out.Content = append(out.Content, &mcp.TextContent{Text: c.Text})
	}
	return out
}

// preflight rejects tools/call requests the dispatcher would refuse,
// before the SDK's own tool lookup answers with a generic error.
func preflight(d Dispatcher) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}
			ctr, ok := req.(*mcp.CallToolRequest)
			if !ok || ctr.Params == nil {
				return next(ctx, method, req)
			}
			if err := d.Preflight(ctr.Params.Name); err != nil {
				debug.Log("transport", "tools/call rejected", "tool", ctr.Params.Name, "error", err)
				return nil, wireError(err)
			}
			return next(ctx, method, req)
		}
	}
}
