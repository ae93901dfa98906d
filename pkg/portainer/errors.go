package portainer

import (
	"errors"
	"fmt"
	"io"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 64 << 10

// ErrMissingAPIKey is returned before any request when no API key is set.
var ErrMissingAPIKey = errors.New("Portainer API key is not configured (set PORTAINER_API_KEY or portainer.api_key)")

// StatusError is a non-2xx response from Portainer.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: Portainer returned HTTP %d: %s", e.Operation, e.StatusCode, e.Body)
}

// TransportError is a request that failed before a response arrived.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MapError converts a client error into an *api.ToolError. Errors that
// already are ToolErrors pass through unchanged; anything unrecognized
// becomes an internal error.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if te, ok := api.AsToolError(err); ok {
		return te
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return api.NewRemoteAPIError(statusErr.StatusCode, statusErr.Body)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return api.NewTransportError(transportErr.Err)
	}

	if errors.Is(err, ErrMissingAPIKey) {
		return api.NewMisconfiguredError(err.Error())
	}

	return api.NewInternalError(err.Error())
}

// readErrorBody returns the response body verbatim, cut at maxErrorBody.
func readErrorBody(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}
