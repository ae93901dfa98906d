package portainer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/debug"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/observability"
)

// Config holds the connection settings for a Portainer instance.
type Config struct {
	// BaseURL is the Portainer root, e.g. https://portainer.example:9443.
	BaseURL string

	// APIKey is sent in the X-API-Key header. An empty key makes every
	// request fail with ErrMissingAPIKey.
	APIKey string

	// EndpointID selects the managed Docker environment.
	EndpointID string

	// Timeout bounds a single request. Zero means no client-side timeout.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate checks for self-signed
	// Portainer installs.
	InsecureSkipVerify bool

	// HTTPClient overrides the default client. Timeout and
	// InsecureSkipVerify are ignored when it is set.
	HTTPClient *http.Client
}

// Client issues requests against one Portainer endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	endpointID string
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
		if cfg.InsecureSkipVerify {
			tr := http.DefaultTransport.(*http.Transport).Clone()
			tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via config
			hc.Transport = tr
		}
	}

	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		endpointID: cfg.EndpointID,
	}
}

// Configured reports whether the client can make requests at all. A
// key made only of whitespace counts as missing.
func (c *Client) Configured() error {
	if c == nil || c.apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// EndpointID returns the configured Portainer endpoint identifier.
func (c *Client) EndpointID() string { return c.endpointID }

// dockerPath builds a path under the endpoint's Docker proxy.
func (c *Client) dockerPath(p string) string {
	return "/api/endpoints/" + url.PathEscape(c.endpointID) + "/docker" + p
}

// getJSON issues a GET and decodes a JSON response into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	data, err := c.do(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

// do sends one request and returns the response body of a 2xx reply.
// Non-2xx replies come back as *StatusError, network failures as
// *TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) ([]byte, error) {
	if err := c.Configured(); err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", op, err)
		}
		debug.Raw("portainer", ">>> "+op+" "+string(data))
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	debug.Log("portainer", "request", "op", op, "method", method, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observability.RemoteRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.RemoteRequestsTotal.WithLabelValues(op, "error").Inc()
		return nil, &TransportError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	observability.RemoteRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Operation: op, Err: err}
	}
	debug.Raw("portainer", "<<< "+op+" "+debug.Truncate(string(data), 8192))
	return data, nil
}
