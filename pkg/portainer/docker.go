package portainer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/pkg/stdcopy"
)

// ListContainers returns the containers on the endpoint. When all is false
// only running containers are listed.
func (c *Client) ListContainers(ctx context.Context, all bool) ([]container.Summary, error) {
	q := url.Values{}
	if all {
		q.Set("all", "1")
	}
	var out []container.Summary
	if err := c.getJSON(ctx, "container_list", c.dockerPath("/containers/json"), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InspectContainer returns low-level detail for one container.
func (c *Client) InspectContainer(ctx context.Context, id string) (*container.InspectResponse, error) {
	var out container.InspectResponse
	path := c.dockerPath("/containers/" + url.PathEscape(id) + "/json")
	if err := c.getJSON(ctx, "container_inspect", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ContainerLogs returns the last tail lines of combined stdout and stderr.
// Multiplexed streams are demuxed, anything else is returned as sent.
func (c *Client) ContainerLogs(ctx context.Context, id string, tail int) (string, error) {
	q := url.Values{}
	q.Set("stdout", "1")
	q.Set("stderr", "1")
	q.Set("tail", strconv.Itoa(tail))

	path := c.dockerPath("/containers/" + url.PathEscape(id) + "/logs")
	data, err := c.do(ctx, "container_logs", http.MethodGet, path, q, nil)
	if err != nil {
		return "", err
	}
	return demuxLogs(data), nil
}

// demuxLogs strips the Docker stream framing. TTY containers send plain
// text, which fails the header check and is returned unchanged.
func demuxLogs(data []byte) string {
	var buf bytes.Buffer
	// Input shorter than one frame header is dropped silently by StdCopy.
	if _, err := stdcopy.StdCopy(&buf, &buf, bytes.NewReader(data)); err != nil || (buf.Len() == 0 && len(data) > 0) {
		return string(data)
	}
	return buf.String()
}

// ContainerAction posts a lifecycle action (start, stop, restart, pause,
// unpause) for a container.
func (c *Client) ContainerAction(ctx context.Context, id, action string) error {
	path := c.dockerPath("/containers/" + url.PathEscape(id) + "/" + url.PathEscape(action))
	_, err := c.do(ctx, "container_"+action, http.MethodPost, path, nil, nil)
	return err
}

// CreateContainer creates a container named name and returns its id.
func (c *Client) CreateContainer(ctx context.Context, name string, req *container.CreateRequest) (string, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	data, err := c.do(ctx, "container_create", http.MethodPost, c.dockerPath("/containers/create"), q, req)
	if err != nil {
		return "", err
	}
	var out container.CreateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("container_create: decoding response: %w", err)
	}
	return out.ID, nil
}

// StartContainer starts a created container.
func (c *Client) StartContainer(ctx context.Context, id string) error {
	path := c.dockerPath("/containers/" + url.PathEscape(id) + "/start")
	_, err := c.do(ctx, "container_start", http.MethodPost, path, nil, nil)
	return err
}

// ListImages returns the images on the endpoint.
func (c *Client) ListImages(ctx context.Context) ([]image.Summary, error) {
	var out []image.Summary
	if err := c.getJSON(ctx, "image_list", c.dockerPath("/images/json"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListVolumes returns the volumes on the endpoint.
func (c *Client) ListVolumes(ctx context.Context) ([]*volume.Volume, error) {
	var out volume.ListResponse
	if err := c.getJSON(ctx, "volume_list", c.dockerPath("/volumes"), nil, &out); err != nil {
		return nil, err
	}
	return out.Volumes, nil
}

// ListNetworks returns the networks on the endpoint.
func (c *Client) ListNetworks(ctx context.Context) ([]network.Summary, error) {
	var out []network.Summary
	if err := c.getJSON(ctx, "network_list", c.dockerPath("/networks"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Info returns the Docker daemon's system information.
func (c *Client) Info(ctx context.Context) (*system.Info, error) {
	var out system.Info
	if err := c.getJSON(ctx, "system_info", c.dockerPath("/info"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
