package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	switch c.Server.Transport {
	case TransportStdio, TransportStreamableHTTP, TransportSSE:
		// valid
	default:
		errs = append(errs, fmt.Errorf("server.transport must be %q, %q, or %q, got %q",
			TransportStdio, TransportStreamableHTTP, TransportSSE, c.Server.Transport))
	}

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// portainer.url must be an absolute http(s) URL.
	if u, err := url.Parse(c.Portainer.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("portainer.url must be an absolute http(s) URL, got %q", c.Portainer.URL))
	}

	if strings.TrimSpace(c.Portainer.EndpointID) == "" {
		errs = append(errs, fmt.Errorf("portainer.endpoint_id is required"))
	}

	if c.Portainer.Timeout < 0 {
		errs = append(errs, fmt.Errorf("portainer.timeout must be >= 0, got %v", c.Portainer.Timeout))
	}

	switch c.Auth.Type {
	case "none":
		// valid
	case "apikey":
		if len(c.Auth.APIKeys) == 0 {
			errs = append(errs, fmt.Errorf("auth.api_keys must not be empty when auth.type is \"apikey\""))
		}
		for i, k := range c.Auth.APIKeys {
			if k.Key == "" && k.KeyFile == "" {
				errs = append(errs, fmt.Errorf("auth.api_keys[%d]: key or key_file is required", i))
			}
		}
	case "jwt":
		if c.Auth.JWT.JWKSURL == "" {
			errs = append(errs, fmt.Errorf("auth.jwt.jwks_url is required when auth.type is \"jwt\""))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\", \"apikey\", or \"jwt\", got %q", c.Auth.Type))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	return errors.Join(errs...)
}

// HasAPIKey reports whether a Portainer credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.Portainer.APIKey) != ""
}
