// Package config provides unified configuration for the Portainer MCP bridge.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (PORTAINER_ and PORTAINER_MCP_ prefixes)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
//
// A missing Portainer API key is not a load error. The dispatcher rejects
// every tool call while it is absent.
package config

import "time"

// Transport types for the inbound MCP surface.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
)

// Config holds all configuration for the bridge.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Portainer     PortainerConfig     `yaml:"portainer"`
	Auth          AuthConfig          `yaml:"auth"`
	Tools         ToolsConfig         `yaml:"tools"`
	Observability ObservabilityConfig `yaml:"observability"`
	Log           LogConfig           `yaml:"log"`
}

// ServerConfig holds the inbound MCP transport settings.
type ServerConfig struct {
	Transport       string        `yaml:"transport"`        // default: "stdio"
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 120s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
}

// PortainerConfig holds the outbound Portainer API settings.
type PortainerConfig struct {
	URL                string        `yaml:"url"`          // default: "http://localhost:9000"
	APIKey             string        `yaml:"api_key"`      // sent as X-API-Key
	APIKeyFile         string        `yaml:"api_key_file"` // _file variant for api_key
	EndpointID         string        `yaml:"endpoint_id"`  // default: "1"
	Timeout            time.Duration `yaml:"timeout"`      // 0 means no client timeout
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
}

// AuthConfig holds inbound authentication for the HTTP transports.
type AuthConfig struct {
	Type    string         `yaml:"type"` // "none", "apikey", "jwt"; default: "none"
	APIKeys []APIKeyConfig `yaml:"api_keys"`
	JWT     JWTConfig      `yaml:"jwt"`
}

// APIKeyConfig describes a single inbound API key.
type APIKeyConfig struct {
	Key     string `yaml:"key" json:"key"`
	KeyFile string `yaml:"key_file" json:"key_file"`
	Subject string `yaml:"subject" json:"subject"`
}

// JWTConfig holds JWT/JWKS validation settings.
type JWTConfig struct {
	Issuer   string        `yaml:"issuer"`
	Audience string        `yaml:"audience"`
	JWKSURL  string        `yaml:"jwks_url"`
	CacheTTL time.Duration `yaml:"cache_ttl"` // default: 1h
}

// ToolsConfig controls which tools the bridge exposes.
type ToolsConfig struct {
	Disabled []string `yaml:"disabled"`
}

// ObservabilityConfig holds monitoring settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings. The endpoint
// is only served by the HTTP transports.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LogConfig holds log level and debug category settings.
type LogConfig struct {
	Level string `yaml:"level"` // default: "INFO"
	Debug string `yaml:"debug"` // comma-separated debug categories
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Transport:       TransportStdio,
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Portainer: PortainerConfig{
			URL:        "http://localhost:9000",
			EndpointID: "1",
		},
		Auth: AuthConfig{
			Type: "none",
			JWT: JWTConfig{
				CacheTTL: time.Hour,
			},
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}
