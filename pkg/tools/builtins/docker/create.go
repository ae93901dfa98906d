package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/portainer"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

// createContainer is always gated. The container is created, then started;
// a failed start leaves the created container in place.
func (p *Provider) createContainer(ctx context.Context, raw json.RawMessage) (*tools.ToolResult, error) {
	if c := peekConfirm(raw); !c.Confirm {
		what := "Container creation"
		if c.Name != "" {
			what = fmt.Sprintf("Creating container %q", c.Name)
		}
		return confirmationWarning(what), nil
	}

	var args createContainerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireString("name", args.Name); err != nil {
		return nil, err
	}
	if err := requireString("image", args.Image); err != nil {
		return nil, err
	}
	if args.RestartPolicy == "" {
		args.RestartPolicy = defaultRestartPolicy
	}
	if err := requireOneOf("restart_policy", args.RestartPolicy, restartPolicies); err != nil {
		return nil, err
	}

	req, err := buildCreateRequest(&args)
	if err != nil {
		return nil, err
	}

	id, err := p.client.CreateContainer(ctx, args.Name, req)
	if err != nil {
		return nil, err
	}
	if err := p.client.StartContainer(ctx, id); err != nil {
		return nil, startFailed(id, err)
	}

	return tools.TextResult(fmt.Sprintf("Container %s created and started with ID %s.", args.Name, shortID(id))), nil
}

// startFailed keeps the mapped error kind and points at the container that
// was left behind.
func startFailed(id string, err error) error {
	te, _ := api.AsToolError(portainer.MapError(err))
	out := *te
	out.Message = fmt.Sprintf("container %s was created but failed to start: %s", shortID(id), te.Message)
	return &out
}

// buildCreateRequest maps tool arguments onto the Docker create payload.
// Each port pair yields an exposed port and a host binding; each volume
// pair yields a "host:container" bind.
func buildCreateRequest(args *createContainerArgs) (*container.CreateRequest, error) {
	cfg := &container.Config{
		Image: args.Image,
		Env:   args.Env,
	}
	hostCfg := &container.HostConfig{
		RestartPolicy: container.RestartPolicy{Name: container.RestartPolicyMode(args.RestartPolicy)},
	}

	if len(args.Ports) > 0 {
		exposed := nat.PortSet{}
		bindings := nat.PortMap{}
		for i, m := range args.Ports {
			param := fmt.Sprintf("ports[%d]", i)
			if m.Host == "" || m.Container == "" {
				return nil, api.NewInvalidParamsError(param, "port mapping needs both host and container")
			}
			proto, port := "tcp", string(m.Container)
			if before, after, ok := strings.Cut(port, "/"); ok {
				port, proto = before, after
			}
			p, err := nat.NewPort(proto, port)
			if err != nil {
				return nil, api.NewInvalidParamsError(param, err.Error())
			}
			exposed[p] = struct{}{}
			bindings[p] = append(bindings[p], nat.PortBinding{HostPort: string(m.Host)})
		}
		cfg.ExposedPorts = exposed
		hostCfg.PortBindings = bindings
	}

	for i, m := range args.Volumes {
		if m.Host == "" || m.Container == "" {
			return nil, api.NewInvalidParamsError(fmt.Sprintf("volumes[%d]", i), "volume mapping needs both host and container")
		}
		hostCfg.Binds = append(hostCfg.Binds, string(m.Host)+":"+string(m.Container))
	}

	return &container.CreateRequest{Config: cfg, HostConfig: hostCfg}, nil
}
