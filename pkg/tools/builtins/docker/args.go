package docker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/api"
)

// decodeArgs unmarshals raw call arguments into v. Empty or null input
// leaves v at its zero value.
func decodeArgs(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return api.NewInvalidParamsError("arguments", fmt.Sprintf("invalid arguments: %s", err.Error()))
	}
	return nil
}

func requireString(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return api.NewInvalidParamsError(param, fmt.Sprintf("%s is required", param))
	}
	return nil
}

func requireOneOf(param, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return api.NewInvalidParamsError(param,
			fmt.Sprintf("%s must be one of %s, got %q", param, strings.Join(allowed, ", "), value))
	}
	return nil
}

// flexString accepts a JSON string or number. Port numbers arrive both ways.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("expected an integer, got %s", n.String())
	}
	*f = flexString(n.String())
	return nil
}

// mapping is one {host, container} pair.
type mapping struct {
	Host      flexString `json:"host"`
	Container flexString `json:"container"`
}

type listContainersArgs struct {
	All *bool `json:"all"`
}

type containerArgs struct {
	ContainerID string `json:"container_id"`
}

type containerLogsArgs struct {
	ContainerID string `json:"container_id"`
	Tail        *int   `json:"tail"`
}

type containerActionArgs struct {
	ContainerID string `json:"container_id"`
	Action      string `json:"action"`
	Confirm     bool   `json:"confirm"`
}

type createContainerArgs struct {
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Env           []string  `json:"env"`
	Ports         []mapping `json:"ports"`
	Volumes       []mapping `json:"volumes"`
	RestartPolicy string    `json:"restart_policy"`
	Confirm       bool      `json:"confirm"`
}

type stackEnvArg struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type deployStackArgs struct {
	Name           string        `json:"name"`
	ComposeContent string        `json:"compose_content"`
	Env            []stackEnvArg `json:"env"`
	Confirm        bool          `json:"confirm"`
}

// confirmArg reads only the confirm flag so a gate can run before the
// rest of the arguments are validated.
type confirmArg struct {
	Name    string `json:"name"`
	Confirm bool   `json:"confirm"`
}

// peekConfirm extracts confirm and name, ignoring decode errors elsewhere.
func peekConfirm(raw json.RawMessage) confirmArg {
	var c confirmArg
	_ = json.Unmarshal(raw, &c)
	return c
}
