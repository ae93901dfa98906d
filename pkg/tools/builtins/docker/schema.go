package docker

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools"
)

// Tool names.
const (
	ToolListContainers  = "list_containers"
	ToolContainerInfo   = "container_info"
	ToolContainerLogs   = "container_logs"
	ToolContainerAction = "container_action"
	ToolCreateContainer = "create_container"
	ToolListImages      = "list_images"
	ToolListVolumes     = "list_volumes"
	ToolListNetworks    = "list_networks"
	ToolSystemInfo      = "system_info"
	ToolDeployStack     = "deploy_stack"
)

const (
	defaultTail          = 100
	defaultRestartPolicy = "unless-stopped"
)

// Allowed values for enumerated parameters.
var (
	containerActions = []string{"start", "stop", "restart", "pause", "unpause"}
	restartPolicies  = []string{"no", "always", "unless-stopped", "on-failure"}
)

func enum(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func defaultValue(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func object(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	if props == nil {
		props = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func str(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func confirmFlag(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: desc, Default: defaultValue(false)}
}

// hostContainerPair describes a {host, container} mapping entry.
func hostContainerPair(desc, hostDesc, containerDesc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: desc,
		Items: object([]string{"host", "container"}, map[string]*jsonschema.Schema{
			"host":      {Types: []string{"string", "integer"}, Description: hostDesc},
			"container": {Types: []string{"string", "integer"}, Description: containerDesc},
		}),
	}
}

// descriptors is the static tool table in listing order.
var descriptors = []tools.Descriptor{
	{
		Name:        ToolListContainers,
		Description: "List Docker containers on the Portainer endpoint",
		InputSchema: object(nil, map[string]*jsonschema.Schema{
			"all": {Type: "boolean", Description: "Include stopped containers", Default: defaultValue(true)},
		}),
	},
	{
		Name:        ToolContainerInfo,
		Description: "Get detailed information about a container",
		InputSchema: object([]string{"container_id"}, map[string]*jsonschema.Schema{
			"container_id": str("Container ID or name"),
		}),
	},
	{
		Name:        ToolContainerLogs,
		Description: "Get recent logs from a container",
		InputSchema: object([]string{"container_id"}, map[string]*jsonschema.Schema{
			"container_id": str("Container ID or name"),
			"tail":         {Type: "integer", Description: "Number of lines from the end of the logs", Default: defaultValue(defaultTail)},
		}),
	},
	{
		Name:        ToolContainerAction,
		Description: "Start, stop, restart, pause or unpause a container. Destructive actions require confirm=true",
		InputSchema: object([]string{"container_id", "action"}, map[string]*jsonschema.Schema{
			"container_id": str("Container ID or name"),
			"action":       {Type: "string", Description: "Action to perform", Enum: enum(containerActions)},
			"confirm":      confirmFlag("Confirm a destructive action"),
		}),
	},
	{
		Name:        ToolCreateContainer,
		Description: "Create and start a new container. Requires confirm=true",
		InputSchema: object([]string{"name", "image", "confirm"}, map[string]*jsonschema.Schema{
			"name":  str("Container name"),
			"image": str("Image reference, e.g. nginx:latest"),
			"env": {
				Type:        "array",
				Description: "Environment variables as KEY=VALUE",
				Items:       &jsonschema.Schema{Type: "string"},
			},
			"ports":   hostContainerPair("Port mappings", "Host port", "Container port, optionally with /tcp or /udp"),
			"volumes": hostContainerPair("Bind mounts", "Host path", "Container path"),
			"restart_policy": {
				Type:        "string",
				Description: "Restart policy",
				Enum:        enum(restartPolicies),
				Default:     defaultValue(defaultRestartPolicy),
			},
			"confirm": confirmFlag("Confirm container creation"),
		}),
	},
	{
		Name:        ToolListImages,
		Description: "List Docker images on the Portainer endpoint",
		InputSchema: object(nil, nil),
	},
	{
		Name:        ToolListVolumes,
		Description: "List Docker volumes on the Portainer endpoint",
		InputSchema: object(nil, nil),
	},
	{
		Name:        ToolListNetworks,
		Description: "List Docker networks on the Portainer endpoint",
		InputSchema: object(nil, nil),
	},
	{
		Name:        ToolSystemInfo,
		Description: "Get Docker system information for the Portainer endpoint",
		InputSchema: object(nil, nil),
	},
	{
		Name:        ToolDeployStack,
		Description: "Deploy a Docker Compose stack through Portainer. Requires confirm=true",
		InputSchema: object([]string{"name", "compose_content", "confirm"}, map[string]*jsonschema.Schema{
			"name":            str("Stack name"),
			"compose_content": str("Docker Compose file content"),
			"env": {
				Type:        "array",
				Description: "Stack environment variables",
				Items: object([]string{"name", "value"}, map[string]*jsonschema.Schema{
					"name":  str("Variable name"),
					"value": str("Variable value"),
				}),
			},
			"confirm": confirmFlag("Confirm stack deployment"),
		}),
	},
}
