package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

// ErrNotConnected is returned by calls made before Connect.
var ErrNotConnected = errors.New("mcp client not connected")

// ToolInfo is a tool as listed by the server.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// Client wraps an SDK client session for one server.
type Client struct {
	cfg     Config
	session *mcp.ClientSession
}

// New creates a client for cfg. Call Connect before use.
func New(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Connect performs the MCP handshake over the configured transport.
// ctx must stay live for as long as the session is used: the SSE
// transport reads its event stream on it, and canceling ctx ends the
// session. Bound individual calls with their own contexts instead.
func (c *Client) Connect(ctx context.Context) error {
	return c.ConnectWithTransport(ctx, nil)
}

// ConnectWithTransport performs the handshake over transport. A nil
// transport is built from the configuration. The lifetime rule for ctx
// is the same as for Connect.
func (c *Client) ConnectWithTransport(ctx context.Context, transport mcp.Transport) error {
	if transport == nil {
		t, err := c.createTransport()
		if err != nil {
			return err
		}
		transport = t
	}

	client := mcp.NewClient(
		&mcp.Implementation{Name: "portainer-mcp-probe", Version: "1.0.0"},
		&mcp.ClientOptions{Capabilities: &mcp.ClientCapabilities{}},
	)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.cfg.URL, err)
	}
	c.session = session
	return nil
}

func (c *Client) createTransport() (mcp.Transport, error) {
	if c.cfg.URL == "" {
		return nil, errors.New("mcp client: url is required")
	}
	httpClient := c.httpClient()

	switch c.cfg.Transport {
	case "sse":
		return &mcp.SSEClientTransport{Endpoint: c.cfg.URL, HTTPClient: httpClient}, nil
	case "streamable-http", "":
		return &mcp.StreamableClientTransport{Endpoint: c.cfg.URL, HTTPClient: httpClient}, nil
	default:
		return nil, fmt.Errorf("unsupported transport type %q", c.cfg.Transport)
	}
}

// httpClient returns nil when no headers are needed so the SDK uses its
// default client.
func (c *Client) httpClient() *http.Client {
	headers := make(map[string]string, len(c.cfg.Headers)+1)
	for k, v := range c.cfg.Headers {
		headers[k] = v
	}
	if c.cfg.BearerToken != "" {
		headers["Authorization"] = "Bearer " + c.cfg.BearerToken
	}
	if len(headers) == 0 {
		return nil
	}
	return &http.Client{Transport: &headerTransport{base: http.DefaultTransport, headers: headers}}
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

// ListTools returns every tool the server advertises, following
// pagination.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	if c.session == nil {
		return nil, ErrNotConnected
	}

	var out []ToolInfo
	for tool, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("listing tools: %w", err)
		}
		info := ToolInfo{Name: tool.Name, Description: tool.Description}
		if tool.InputSchema != nil {
			data, err := json.Marshal(tool.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("marshaling input schema of %q: %w", tool.Name, err)
			}
			info.InputSchema = data
		}
		out = append(out, info)
	}
	return out, nil
}

// CallTool invokes name with JSON-encoded args. Empty args send an empty
// object. A JSON-RPC error from the server is returned as an error; a
// result flagged isError is returned as an internal ToolError.
func (c *Client) CallTool(ctx context.Context, name string, args json.RawMessage) (*tools.ToolResult, error) {
	if c.session == nil {
		return nil, ErrNotConnected
	}

	params := map[string]any{}
	if len(strings.TrimSpace(string(args))) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, api.NewInvalidParamsError("arguments", fmt.Sprintf("invalid arguments JSON: %v", err))
		}
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: params})
	if err != nil {
		return nil, err
	}

	out := convertResult(result)
	if result.IsError {
		return nil, api.NewInternalError(out.Text())
	}
	return out, nil
}

// Close ends the session.
func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func convertResult(result *mcp.CallToolResult) *tools.ToolResult {
	out := &tools.ToolResult{}
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			out.Content = append(out.Content, tools.Content{Type: tools.ContentTypeText, Text: tc.Text})
		}
	}
	return out
}
