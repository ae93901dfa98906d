package main

import (
	"fmt"
	"log/slog"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/auth"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/auth/apikey"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/auth/jwt"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/config"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/debug"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/portainer"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools/builtins/docker"
	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/tools/registry"
)

// loadConfig loads configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	debug.Init(cfg.Log.Debug, cfg.Log.Level)
	return cfg, nil
}

// buildRegistry wires the Portainer client and the docker tools. A
// missing API key is logged, not fatal: every call reports it instead.
func buildRegistry(cfg *config.Config) *registry.Registry {
	client := portainer.New(portainer.Config{
		BaseURL:            cfg.Portainer.URL,
		APIKey:             cfg.Portainer.APIKey,
		EndpointID:         cfg.Portainer.EndpointID,
		Timeout:            cfg.Portainer.Timeout,
		InsecureSkipVerify: cfg.Portainer.InsecureSkipVerify,
	})
	if !cfg.HasAPIKey() {
		slog.Warn("no Portainer API key configured; tool calls will fail until PORTAINER_API_KEY is set")
	}

	reg := registry.New(
		registry.WithReadiness(client.Configured),
		registry.WithDisabled(cfg.Tools.Disabled),
	)
	reg.Register(docker.New(client))
	return reg
}

// buildAuth returns the inbound authenticator, or nil when auth is off.
func buildAuth(cfg *config.Config) (auth.Authenticator, error) {
	switch cfg.Auth.Type {
	case "", "none":
		return nil, nil
	case "apikey":
		keys := make([]apikey.Key, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			keys = append(keys, apikey.Key{Value: k.Key, Subject: k.Subject})
		}
		return auth.Chain{apikey.New(keys)}, nil
	case "jwt":
		return auth.Chain{jwt.New(jwt.Config{
			Issuer:   cfg.Auth.JWT.Issuer,
			Audience: cfg.Auth.JWT.Audience,
			JWKSURL:  cfg.Auth.JWT.JWKSURL,
			CacheTTL: cfg.Auth.JWT.CacheTTL,
		})}, nil
	default:
		return nil, fmt.Errorf("unsupported auth type %q", cfg.Auth.Type)
	}
}
