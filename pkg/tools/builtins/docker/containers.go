package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

func (p *Provider) listContainers(ctx context.Context, raw json.RawMessage) (*tools.ToolResult, error) {
	var args listContainersArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	all := true
	if args.All != nil {
		all = *args.All
	}

	list, err := p.client.ListContainers(ctx, all)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(header(len(list), "containers"))
	for _, c := range list {
		fmt.Fprintf(&b, "\n\n- %s (%s)", containerName(c.Names), shortID(c.ID))
		fmt.Fprintf(&b, "\n  Image: %s", orNone(c.Image))
		fmt.Fprintf(&b, "\n  Status: %s", orNone(c.Status))
		fmt.Fprintf(&b, "\n  State: %s", orNone(string(c.State)))
		fmt.Fprintf(&b, "\n  Ports: %s", portSummary(c.Ports))
	}
	return tools.TextResult(b.String()), nil
}

func (p *Provider) containerInfo(ctx context.Context, raw json.RawMessage) (*tools.ToolResult, error) {
	var args containerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireString("container_id", args.ContainerID); err != nil {
		return nil, err
	}

	info, err := p.client.InspectContainer(ctx, args.ContainerID)
	if err != nil {
		return nil, err
	}
	return tools.TextResult(renderInspect(info)), nil
}

func renderInspect(info *container.InspectResponse) string {
	var name, id, image string
	state, started, restart := "unknown", "unknown", none
	if base := info.ContainerJSONBase; base != nil {
		name = strings.TrimPrefix(base.Name, "/")
		id = shortID(base.ID)
		image = base.Image
		if base.State != nil {
			state = orNone(string(base.State.Status))
			if base.State.StartedAt != "" {
				started = base.State.StartedAt
			}
		}
		if base.HostConfig != nil {
			restart = orNone(string(base.HostConfig.RestartPolicy.Name))
		}
	}

	var env []string
	if info.Config != nil {
		env = info.Config.Env
		if info.Config.Image != "" {
			image = info.Config.Image
		}
	}

	mounts := make([]string, 0, len(info.Mounts))
	for _, m := range info.Mounts {
		mounts = append(mounts, m.Source+" -> "+m.Destination)
	}

	networks := none
	if info.NetworkSettings != nil && len(info.NetworkSettings.Networks) > 0 {
		networks = strings.Join(sortedKeys(info.NetworkSettings.Networks), ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Container: %s\n", orNone(name))
	fmt.Fprintf(&b, "ID: %s\n", orNone(id))
	fmt.Fprintf(&b, "State: %s\n", state)
	fmt.Fprintf(&b, "Started: %s\n", started)
	fmt.Fprintf(&b, "Image: %s\n", orNone(image))
	fmt.Fprintf(&b, "Restart Policy: %s\n", restart)
	fmt.Fprintf(&b, "Environment:%s\n", lines("  ", env))
	fmt.Fprintf(&b, "Mounts:%s\n", lines("  ", mounts))
	fmt.Fprintf(&b, "Networks: %s", networks)
	return b.String()
}

func (p *Provider) containerLogs(ctx context.Context, raw json.RawMessage) (*tools.ToolResult, error) {
	var args containerLogsArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireString("container_id", args.ContainerID); err != nil {
		return nil, err
	}
	tail := defaultTail
	if args.Tail != nil {
		tail = *args.Tail
	}
	if tail < 0 {
		return nil, api.NewInvalidParamsError("tail", "tail must not be negative")
	}

	logs, err := p.client.ContainerLogs(ctx, args.ContainerID, tail)
	if err != nil {
		return nil, err
	}
	if logs == "" {
		logs = "(no output)"
	}
	return tools.TextResult(fmt.Sprintf("Logs for container %s (last %d lines):\n\n%s", args.ContainerID, tail, logs)), nil
}

func (p *Provider) containerAction(ctx context.Context, raw json.RawMessage) (*tools.ToolResult, error) {
	var args containerActionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireOneOf("action", args.Action, containerActions); err != nil {
		return nil, err
	}
	if tools.RequiresConfirmation(args.Action) && !args.Confirm {
		target := "container"
		if args.ContainerID != "" {
			target = "container " + args.ContainerID
		}
		return confirmationWarning(fmt.Sprintf("Action %q on %s", args.Action, target)), nil
	}
	if err := requireString("container_id", args.ContainerID); err != nil {
		return nil, err
	}

	if err := p.client.ContainerAction(ctx, args.ContainerID, args.Action); err != nil {
		return nil, err
	}
	return tools.TextResult(fmt.Sprintf("Container %s: %s completed successfully.", args.ContainerID, args.Action)), nil
}
