package portainer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// StackEnv is one environment variable passed to a stack deployment.
type StackEnv struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StackRequest is the body of a standalone compose stack deployment.
type StackRequest struct {
	Name             string     `json:"name"`
	StackFileContent string     `json:"stackFileContent"`
	Env              []StackEnv `json:"env"`
}

// Stack is the subset of Portainer's stack representation we read back.
type Stack struct {
	ID         int    `json:"Id"`
	Name       string `json:"Name"`
	EndpointID int    `json:"EndpointId"`
}

// CreateStandaloneStack deploys a compose stack from inline file content.
func (c *Client) CreateStandaloneStack(ctx context.Context, req *StackRequest) (*Stack, error) {
	if req.Env == nil {
		req.Env = []StackEnv{}
	}

	q := url.Values{}
	q.Set("endpointId", c.endpointID)

	data, err := c.do(ctx, "stack_create", http.MethodPost, "/api/stacks/create/standalone/string", q, req)
	if err != nil {
		return nil, err
	}
	var out Stack
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("stack_create: decoding response: %w", err)
	}
	return &out, nil
}
