package apikey

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/auth"
)

func TestAuthenticate(t *testing.T) {
	a := New([]Key{
		{Value: "key-alice", Subject: "alice"},
		{Value: "key-anon"},
		{Value: ""},
	})

	tests := []struct {
		name    string
		header  string
		want    auth.Decision
		subject string
	}{
		{name: "no header", header: "", want: auth.Abstain},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", want: auth.Abstain},
		{name: "valid key", header: "Bearer key-alice", want: auth.Accept, subject: "alice"},
		{name: "lowercase scheme", header: "bearer key-alice", want: auth.Accept, subject: "alice"},
		{name: "default subject", header: "Bearer key-anon", want: auth.Accept, subject: "apikey"},
		{name: "unknown key", header: "Bearer nope", want: auth.Reject},
		{name: "empty token", header: "Bearer ", want: auth.Reject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/mcp", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			res := a.Authenticate(context.Background(), r)
			if res.Decision != tt.want {
				t.Fatalf("Decision = %v, want %v", res.Decision, tt.want)
			}
			if tt.want == auth.Accept {
				if res.Identity.Subject != tt.subject || res.Identity.Method != "apikey" {
					t.Errorf("unexpected identity %+v", res.Identity)
				}
			}
			if tt.want == auth.Reject && res.Err == nil {
				t.Error("rejection should carry an error")
			}
		})
	}
}

func TestNewSkipsEmptyKeys(t *testing.T) {
	a := New([]Key{{Value: ""}})
	if len(a.entries) != 0 {
		t.Errorf("expected no entries, got %d", len(a.entries))
	}
}
