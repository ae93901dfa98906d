// Package portainer is a thin HTTP client for the Portainer API.
//
// Docker Engine calls go through Portainer's Docker proxy at
// /api/endpoints/{endpointID}/docker/..., stack deployment through
// /api/stacks. Every request carries the configured API key in the
// X-API-Key header.
//
// The client performs no retries and no caching. Failures come back as
// typed errors: [*StatusError] for non-2xx responses (status and body kept
// verbatim), [*TransportError] for requests that never got a response, and
// [ErrMissingAPIKey] when no key is configured. [MapError] converts them
// into the api.ToolError taxonomy.
//
// Response and request bodies use the Docker Engine API types from
// github.com/docker/docker/api/types.
package portainer
