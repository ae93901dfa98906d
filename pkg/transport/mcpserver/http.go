package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/auth"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/observability"
)

// Mount paths for the HTTP transports.
const (
	PathStreamable = "/mcp"
	PathSSE        = "/sse"
	PathHealth     = "/healthz"
)

// HTTPOptions configures the HTTP handler.
type HTTPOptions struct {
	// Auth authenticates MCP requests. Nil leaves them open.
	Auth auth.Authenticator

	// MetricsPath serves Prometheus metrics when non-empty.
	MetricsPath string

	// EnableSSE mounts the legacy SSE transport next to streamable HTTP.
	EnableSSE bool
}

// HTTPHandler serves server over streamable HTTP, and over SSE when
// enabled, with health and metrics endpoints alongside.
func HTTPHandler(server *mcp.Server, opts HTTPOptions) http.Handler {
	getServer := func(*http.Request) *mcp.Server { return server }

	mux := http.NewServeMux()
	mux.Handle(PathStreamable, mcp.NewStreamableHTTPHandler(getServer, nil))
	if opts.EnableSSE {
		mux.Handle(PathSSE, mcp.NewSSEHandler(getServer, nil))
	}
	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if opts.MetricsPath != "" {
		mux.Handle("GET "+opts.MetricsPath, promhttp.Handler())
	}

	var h http.Handler = mux
	if opts.Auth != nil {
		bypass := []string{PathHealth}
		if opts.MetricsPath != "" {
			bypass = append(bypass, opts.MetricsPath)
		}
		h = auth.Middleware(opts.Auth, bypass)(h)
	}
	return observability.MetricsMiddleware(h)
}

// ServeStdio runs server on stdin/stdout until the client disconnects
// or ctx is done.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
