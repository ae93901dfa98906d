package api

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of a tool call failure.
type ErrorKind string

const (
	ErrorKindMisconfigured  ErrorKind = "misconfigured"
	ErrorKindMethodNotFound ErrorKind = "method_not_found"
	ErrorKindInvalidParams  ErrorKind = "invalid_params"
	ErrorKindRemoteAPI      ErrorKind = "remote_api"
	ErrorKindTransport      ErrorKind = "transport"
	ErrorKindInternal       ErrorKind = "internal"
)

// JSON-RPC error codes reported to MCP clients. The -32000..-32099 range
// is reserved by JSON-RPC for implementation-defined server errors.
const (
	CodeMisconfigured  int64 = -32001
	CodeRemoteAPI      int64 = -32002
	CodeTransport      int64 = -32003
	CodeMethodNotFound int64 = -32601
	CodeInvalidParams  int64 = -32602
	CodeInternal       int64 = -32603
)

// ToolError is the single error object a failed tool call surfaces to the
// caller. Code is the JSON-RPC code, Message is human readable.
type ToolError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int64     `json:"code"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`

	// StatusCode is the Portainer HTTP status for ErrorKindRemoteAPI.
	StatusCode int `json:"status_code,omitempty"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Kind, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// AsToolError returns err as a *ToolError if one is in its chain.
func AsToolError(err error) (*ToolError, bool) {
	var te *ToolError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// NewMisconfiguredError reports that the bridge cannot reach Portainer
// because required settings are absent.
func NewMisconfiguredError(message string) *ToolError {
	return &ToolError{
		Kind:    ErrorKindMisconfigured,
		Code:    CodeMisconfigured,
		Message: message,
	}
}

// NewMethodNotFoundError reports a tool name that is not registered.
func NewMethodNotFoundError(toolName string) *ToolError {
	return &ToolError{
		Kind:    ErrorKindMethodNotFound,
		Code:    CodeMethodNotFound,
		Message: fmt.Sprintf("unknown tool: %s", toolName),
	}
}

// NewInvalidParamsError reports a malformed or missing argument.
func NewInvalidParamsError(param, message string) *ToolError {
	return &ToolError{
		Kind:    ErrorKindInvalidParams,
		Code:    CodeInvalidParams,
		Param:   param,
		Message: message,
	}
}

// NewRemoteAPIError embeds a non-2xx Portainer response verbatim.
func NewRemoteAPIError(statusCode int, body string) *ToolError {
	return &ToolError{
		Kind:       ErrorKindRemoteAPI,
		Code:       CodeRemoteAPI,
		Message:    fmt.Sprintf("Portainer API error (HTTP %d): %s", statusCode, body),
		StatusCode: statusCode,
	}
}

// NewTransportError reports that Portainer could not be reached.
func NewTransportError(err error) *ToolError {
	return &ToolError{
		Kind:    ErrorKindTransport,
		Code:    CodeTransport,
		Message: fmt.Sprintf("Portainer connection error: %s", err.Error()),
	}
}

// NewInternalError reports a failure inside the bridge itself.
func NewInternalError(message string) *ToolError {
	return &ToolError{
		Kind:    ErrorKindInternal,
		Code:    CodeInternal,
		Message: message,
	}
}
