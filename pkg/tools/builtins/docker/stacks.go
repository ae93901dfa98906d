package docker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/portainer"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

// deployStack is always gated.
func (p *Provider) deployStack(ctx context.Context, raw json.RawMessage) (*tools.ToolResult, error) {
	if c := peekConfirm(raw); !c.Confirm {
		what := "Stack deployment"
		if c.Name != "" {
			what = fmt.Sprintf("Deploying stack %q", c.Name)
		}
		return confirmationWarning(what), nil
	}

	var args deployStackArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireString("name", args.Name); err != nil {
		return nil, err
	}
	if err := requireString("compose_content", args.ComposeContent); err != nil {
		return nil, err
	}

	req := &portainer.StackRequest{
		Name:             args.Name,
		StackFileContent: args.ComposeContent,
		Env:              make([]portainer.StackEnv, 0, len(args.Env)),
	}
	for i, e := range args.Env {
		if e.Name == "" {
			return nil, api.NewInvalidParamsError(fmt.Sprintf("env[%d].name", i), "environment variable name is required")
		}
		req.Env = append(req.Env, portainer.StackEnv{Name: e.Name, Value: e.Value})
	}

	stack, err := p.client.CreateStandaloneStack(ctx, req)
	if err != nil {
		return nil, err
	}
	return tools.TextResult(fmt.Sprintf("Stack %s deployed successfully with ID %d.", args.Name, stack.ID)), nil
}
