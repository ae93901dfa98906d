package mcpclient

// Config describes a connection to an MCP server.
type Config struct {
	// URL is the MCP endpoint, e.g. http://localhost:8080/mcp.
	URL string `json:"url"`

	// Transport is "streamable-http" (default) or "sse".
	Transport string `json:"transport"`

	// BearerToken is sent as "Authorization: Bearer" when set.
	BearerToken string `json:"-"`

	// Headers are added to every request.
	Headers map[string]string `json:"headers,omitempty"`
}
