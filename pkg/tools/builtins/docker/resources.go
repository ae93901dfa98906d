package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

func (p *Provider) listImages(ctx context.Context, _ json.RawMessage) (*tools.ToolResult, error) {
	images, err := p.client.ListImages(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(header(len(images), "images"))
	for _, img := range images {
		tags := "<none>:<none>"
		if len(img.RepoTags) > 0 {
			tags = strings.Join(img.RepoTags, ", ")
		}
		fmt.Fprintf(&b, "\n\n- %s (%s)", tags, shortID(img.ID))
		fmt.Fprintf(&b, "\n  Size: %s", megabytes(img.Size))
		fmt.Fprintf(&b, "\n  Created: %s", epochDate(img.Created))
	}
	return tools.TextResult(b.String()), nil
}

func (p *Provider) listVolumes(ctx context.Context, _ json.RawMessage) (*tools.ToolResult, error) {
	vols, err := p.client.ListVolumes(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(header(len(vols), "volumes"))
	for _, v := range vols {
		if v == nil {
			continue
		}
		fmt.Fprintf(&b, "\n\n- %s", v.Name)
		fmt.Fprintf(&b, "\n  Driver: %s", orNone(v.Driver))
		fmt.Fprintf(&b, "\n  Mountpoint: %s", orNone(v.Mountpoint))
	}
	return tools.TextResult(b.String()), nil
}

func (p *Provider) listNetworks(ctx context.Context, _ json.RawMessage) (*tools.ToolResult, error) {
	nets, err := p.client.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(header(len(nets), "networks"))
	for _, n := range nets {
		fmt.Fprintf(&b, "\n\n- %s (%s)", n.Name, shortID(n.ID))
		fmt.Fprintf(&b, "\n  Driver: %s", orNone(n.Driver))
		fmt.Fprintf(&b, "\n  Scope: %s", orNone(n.Scope))
	}
	return tools.TextResult(b.String()), nil
}

func (p *Provider) systemInfo(ctx context.Context, _ json.RawMessage) (*tools.ToolResult, error) {
	info, err := p.client.Info(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Docker System Information:\n")
	fmt.Fprintf(&b, "\nVersion: %s", orNone(info.ServerVersion))
	fmt.Fprintf(&b, "\nOS: %s", orNone(info.OperatingSystem))
	fmt.Fprintf(&b, "\nArchitecture: %s", orNone(info.Architecture))
	fmt.Fprintf(&b, "\nTotal Memory: %s", gigabytes(info.MemTotal))
	fmt.Fprintf(&b, "\nCPUs: %d", info.NCPU)
	fmt.Fprintf(&b, "\nContainers: %d (running %d, paused %d, stopped %d)",
		info.Containers, info.ContainersRunning, info.ContainersPaused, info.ContainersStopped)
	fmt.Fprintf(&b, "\nImages: %d", info.Images)
	fmt.Fprintf(&b, "\nStorage Driver: %s", orNone(info.Driver))
	fmt.Fprintf(&b, "\nRoot Directory: %s", orNone(info.DockerRootDir))
	return tools.TextResult(b.String()), nil
}
