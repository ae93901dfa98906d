package integration

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools/builtins/docker"
)

func expectCode(t *testing.T, err error, want int64) {
	t.Helper()
	var we *jsonrpc.Error
	if !errors.As(err, &we) {
		t.Fatalf("expected a JSON-RPC error, got %T: %v", err, err)
	}
	if we.Code != want {
		t.Errorf("code = %d, want %d (%s)", we.Code, want, we.Message)
	}
}

func TestListToolsOverBothTransports(t *testing.T) {
	for _, tc := range []struct{ transport, path string }{
		{"streamable-http", "/mcp"},
		{"sse", "/sse"},
	} {
		t.Run(tc.transport, func(t *testing.T) {
			c := connect(t, tc.transport, tc.path)
			list, err := c.ListTools(t.Context())
			if err != nil {
				t.Fatalf("ListTools: %v", err)
			}
			if len(list) != 10 {
				t.Errorf("expected 10 tools, got %d", len(list))
			}
		})
	}
}

func TestListContainersSendsAPIKey(t *testing.T) {
	testEnv.Portainer.HandleJSON("GET", dockerPrefix+"/containers/json", []container.Summary{
		{ID: "fedcba9876543210", Names: []string{"/db"}, Image: "postgres:16", Status: "Up 2 hours", State: "running"},
	})
	c := connect(t, "streamable-http", "/mcp")

	result, err := c.CallTool(t.Context(), docker.ToolListContainers, nil)
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	text := result.Text()
	for _, want := range []string{"Found 1 containers:", "- db (fedcba987654)", "Image: postgres:16"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	reqs := testEnv.Portainer.Requests()
	if len(reqs) != 1 || reqs[0].Header.Get("X-API-Key") != "ptr_integration" {
		t.Errorf("unexpected Portainer requests %+v", reqs)
	}
}

func TestStopRequiresConfirmation(t *testing.T) {
	testEnv.Portainer.Handle("POST", dockerPrefix+"/containers/db/stop", http.StatusNoContent, "")
	c := connect(t, "streamable-http", "/mcp")

	result, err := c.CallTool(t.Context(), docker.ToolContainerAction,
		json.RawMessage(`{"container_id":"db","action":"stop"}`))
	if err != nil {
		t.Fatalf("unconfirmed stop: %v", err)
	}
	if !strings.Contains(result.Text(), "WARNING") {
		t.Errorf("expected a warning, got %q", result.Text())
	}
	if n := len(testEnv.Portainer.Requests()); n != 0 {
		t.Fatalf("unconfirmed stop made %d Portainer requests", n)
	}

	result, err = c.CallTool(t.Context(), docker.ToolContainerAction,
		json.RawMessage(`{"container_id":"db","action":"stop","confirm":true}`))
	if err != nil {
		t.Fatalf("confirmed stop: %v", err)
	}
	if !strings.Contains(result.Text(), "stop") || !strings.Contains(result.Text(), "db") {
		t.Errorf("unexpected text %q", result.Text())
	}
	if n := len(testEnv.Portainer.Requests()); n != 1 {
		t.Errorf("confirmed stop made %d Portainer requests, want 1", n)
	}
}

func TestCreateContainerFlow(t *testing.T) {
	testEnv.Portainer.HandleJSON("POST", dockerPrefix+"/containers/create", container.CreateResponse{ID: "0123456789abcdef0123"})
	testEnv.Portainer.Handle("POST", dockerPrefix+"/containers/0123456789abcdef0123/start", http.StatusNoContent, "")
	c := connect(t, "sse", "/sse")

	result, err := c.CallTool(t.Context(), docker.ToolCreateContainer, json.RawMessage(`{
		"name": "web",
		"image": "nginx:alpine",
		"ports": [{"host": 8080, "container": 80}],
		"volumes": [{"host": "/srv/www", "container": "/usr/share/nginx/html"}],
		"confirm": true
	}`))
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !strings.Contains(result.Text(), "web") {
		t.Errorf("unexpected text %q", result.Text())
	}

	reqs := testEnv.Portainer.Requests()
	if len(reqs) != 2 || !strings.HasSuffix(reqs[1].Path, "/start") {
		t.Fatalf("expected create then start, got %+v", reqs)
	}
	var body container.CreateRequest
	if err := json.Unmarshal(reqs[0].Body, &body); err != nil {
		t.Fatalf("decoding create body: %v", err)
	}
	if body.Image != "nginx:alpine" || len(body.HostConfig.Binds) != 1 {
		t.Errorf("unexpected create body %s", reqs[0].Body)
	}
}

func TestDeployStack(t *testing.T) {
	testEnv.Portainer.HandleJSON("POST", "/api/stacks/create/standalone/string", map[string]any{"Id": 5, "Name": "blog"})
	c := connect(t, "streamable-http", "/mcp")

	result, err := c.CallTool(t.Context(), docker.ToolDeployStack, json.RawMessage(`{
		"name": "blog",
		"compose_content": "services:\n  web:\n    image: nginx\n",
		"env": [{"name": "TZ", "value": "UTC"}],
		"confirm": true
	}`))
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !strings.Contains(result.Text(), "ID 5") {
		t.Errorf("unexpected text %q", result.Text())
	}
	if q := testEnv.Portainer.Requests()[0].Query.Get("endpointId"); q != "2" {
		t.Errorf("endpointId = %q, want 2", q)
	}
}

func TestErrorCodes(t *testing.T) {
	testEnv.Portainer.Handle("GET", dockerPrefix+"/containers/ghost/json", http.StatusNotFound, `{"message":"No such container: ghost"}`)
	c := connect(t, "streamable-http", "/mcp")

	_, err := c.CallTool(t.Context(), "foo_bar", nil)
	expectCode(t, err, api.CodeMethodNotFound)

	_, err = c.CallTool(t.Context(), docker.ToolContainerLogs, json.RawMessage(`{"container_id":"x","tail":-1}`))
	expectCode(t, err, api.CodeInvalidParams)

	_, err = c.CallTool(t.Context(), docker.ToolContainerInfo, json.RawMessage(`{"container_id":"ghost"}`))
	expectCode(t, err, api.CodeRemoteAPI)
	if err != nil && !strings.Contains(err.Error(), "No such container") {
		t.Errorf("remote error should carry Portainer's message: %v", err)
	}
}
