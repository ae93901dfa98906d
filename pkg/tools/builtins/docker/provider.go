// Package docker implements the Docker management tools on top of the
// Portainer API client.
//
// Each handler decodes its arguments, applies the confirmation gate when
// it mutates state, issues one or two Portainer requests, and renders the
// response as plain text. Remote failures are mapped to api.ToolError by
// portainer.MapError.
package docker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/api/types/volume"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/portainer"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools/registry"
)

// ProviderName identifies this provider in the registry.
const ProviderName = "docker"

// Client is the subset of *portainer.Client the handlers use.
type Client interface {
	ListContainers(ctx context.Context, all bool) ([]container.Summary, error)
	InspectContainer(ctx context.Context, id string) (*container.InspectResponse, error)
	ContainerLogs(ctx context.Context, id string, tail int) (string, error)
	ContainerAction(ctx context.Context, id, action string) error
	CreateContainer(ctx context.Context, name string, req *container.CreateRequest) (string, error)
	StartContainer(ctx context.Context, id string) error
	ListImages(ctx context.Context) ([]image.Summary, error)
	ListVolumes(ctx context.Context) ([]*volume.Volume, error)
	ListNetworks(ctx context.Context) ([]network.Summary, error)
	Info(ctx context.Context) (*system.Info, error)
	CreateStandaloneStack(ctx context.Context, req *portainer.StackRequest) (*portainer.Stack, error)
}

var _ Client = (*portainer.Client)(nil)

type handlerFunc func(ctx context.Context, args json.RawMessage) (*tools.ToolResult, error)

// Provider implements registry.Provider for the Docker tools.
type Provider struct {
	client   Client
	handlers map[string]handlerFunc
}

// Compile-time check that Provider implements registry.Provider.
var _ registry.Provider = (*Provider)(nil)

// New creates a Provider backed by client.
func New(client Client) *Provider {
	p := &Provider{client: client}
	p.handlers = map[string]handlerFunc{
		ToolListContainers:  p.listContainers,
		ToolContainerInfo:   p.containerInfo,
		ToolContainerLogs:   p.containerLogs,
		ToolContainerAction: p.containerAction,
		ToolCreateContainer: p.createContainer,
		ToolListImages:      p.listImages,
		ToolListVolumes:     p.listVolumes,
		ToolListNetworks:    p.listNetworks,
		ToolSystemInfo:      p.systemInfo,
		ToolDeployStack:     p.deployStack,
	}
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() string { return ProviderName }

// Tools returns the tool descriptors in listing order.
func (p *Provider) Tools() []tools.Descriptor { return descriptors }

// Execute runs one Docker tool call.
func (p *Provider) Execute(ctx context.Context, call tools.ToolCall) (*tools.ToolResult, error) {
	h, ok := p.handlers[call.Name]
	if !ok {
		return nil, api.NewMethodNotFoundError(call.Name)
	}
	result, err := h(ctx, call.Arguments)
	if err != nil {
		return nil, portainer.MapError(err)
	}
	return result, nil
}

// confirmationWarning is the result returned when a destructive call
// arrives without confirm=true. No remote call is made.
func confirmationWarning(what string) *tools.ToolResult {
	return tools.WarningResult(fmt.Sprintf(
		"WARNING: %s is a destructive operation and was not performed. "+
			"Re-run with confirm=true to proceed.", what))
}
