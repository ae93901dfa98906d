package api

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestToolErrorInterface(t *testing.T) {
	var _ error = &ToolError{}
}

func TestToolErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *ToolError
		want string
	}{
		{
			"with param",
			&ToolError{Kind: ErrorKindInvalidParams, Param: "container_id", Message: "is required"},
			"invalid_params: is required (param: container_id)",
		},
		{
			"without param",
			&ToolError{Kind: ErrorKindInternal, Message: "internal failure"},
			"internal: internal failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ToolError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		wantKind ErrorKind
		wantCode int64
	}{
		{"misconfigured", NewMisconfiguredError("no key"), ErrorKindMisconfigured, CodeMisconfigured},
		{"not found", NewMethodNotFoundError("foo_bar"), ErrorKindMethodNotFound, CodeMethodNotFound},
		{"invalid params", NewInvalidParamsError("tail", "must be positive"), ErrorKindInvalidParams, CodeInvalidParams},
		{"remote", NewRemoteAPIError(404, "no such container"), ErrorKindRemoteAPI, CodeRemoteAPI},
		{"transport", NewTransportError(errors.New("connection refused")), ErrorKindTransport, CodeTransport},
		{"internal", NewInternalError("boom"), ErrorKindInternal, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.wantKind)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestMethodNotFoundNamesTool(t *testing.T) {
	err := NewMethodNotFoundError("foo_bar")
	if !strings.Contains(err.Message, "foo_bar") {
		t.Errorf("Message = %q, want it to mention foo_bar", err.Message)
	}
}

func TestRemoteAPIErrorEmbedsStatusAndBody(t *testing.T) {
	err := NewRemoteAPIError(409, `{"message":"conflict"}`)
	if err.StatusCode != 409 {
		t.Errorf("StatusCode = %d, want 409", err.StatusCode)
	}
	if !strings.Contains(err.Message, "409") || !strings.Contains(err.Message, `{"message":"conflict"}`) {
		t.Errorf("Message = %q, want status and verbatim body", err.Message)
	}
}

func TestAsToolError(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NewInternalError("boom"))
	te, ok := AsToolError(wrapped)
	if !ok {
		t.Fatal("AsToolError() = false, want true")
	}
	if te.Kind != ErrorKindInternal {
		t.Errorf("Kind = %q, want %q", te.Kind, ErrorKindInternal)
	}

	if _, ok := AsToolError(errors.New("plain")); ok {
		t.Error("AsToolError(plain) = true, want false")
	}
}
