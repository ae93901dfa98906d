package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, PORTAINER_MCP_CONFIG env, ./config.yaml, /etc/portainer-mcp/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. PORTAINER_MCP_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/portainer-mcp/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("PORTAINER_MCP_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/portainer-mcp/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields. The
// PORTAINER_URL, PORTAINER_API_KEY and PORTAINER_ENDPOINT_ID names match
// what Portainer tooling commonly exports.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORTAINER_URL"); v != "" {
		cfg.Portainer.URL = v
	}
	if v := os.Getenv("PORTAINER_API_KEY"); v != "" {
		cfg.Portainer.APIKey = v
	}
	if v := os.Getenv("PORTAINER_ENDPOINT_ID"); v != "" {
		cfg.Portainer.EndpointID = v
	}
	if v := os.Getenv("PORTAINER_INSECURE_SKIP_VERIFY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PORTAINER_INSECURE_SKIP_VERIFY: %w", err)
		}
		cfg.Portainer.InsecureSkipVerify = b
	}

	if v := os.Getenv("PORTAINER_MCP_TRANSPORT"); v != "" {
		cfg.Server.Transport = v
	}
	if v := os.Getenv("PORTAINER_MCP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORTAINER_MCP_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("PORTAINER_MCP_AUTH_TYPE"); v != "" {
		cfg.Auth.Type = v
	}

	// PORTAINER_MCP_API_KEYS: JSON array of inbound API key configs.
	if v := os.Getenv("PORTAINER_MCP_API_KEYS"); v != "" {
		keys, err := parseAPIKeysJSON(v)
		if err != nil {
			return err
		}
		cfg.Auth.APIKeys = keys
	}

	if v := os.Getenv("PORTAINER_MCP_DISABLED_TOOLS"); v != "" {
		cfg.Tools.Disabled = splitList(v)
	}
	if v := os.Getenv("PORTAINER_MCP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PORTAINER_MCP_DEBUG"); v != "" {
		cfg.Log.Debug = v
	}
	return nil
}

// parseAPIKeysJSON parses a JSON array of API key configurations.
func parseAPIKeysJSON(jsonStr string) ([]APIKeyConfig, error) {
	var keys []APIKeyConfig
	if err := json.Unmarshal([]byte(jsonStr), &keys); err != nil {
		return nil, fmt.Errorf("parsing API keys JSON: %w", err)
	}
	return keys, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. A value set directly wins over its _file variant.
func resolveFileReferences(cfg *Config) error {
	if cfg.Portainer.APIKeyFile != "" && cfg.Portainer.APIKey == "" {
		val, err := readSecretFile(cfg.Portainer.APIKeyFile)
		if err != nil {
			return fmt.Errorf("portainer.api_key_file: %w", err)
		}
		cfg.Portainer.APIKey = val
	}

	for i := range cfg.Auth.APIKeys {
		if cfg.Auth.APIKeys[i].KeyFile != "" && cfg.Auth.APIKeys[i].Key == "" {
			val, err := readSecretFile(cfg.Auth.APIKeys[i].KeyFile)
			if err != nil {
				return fmt.Errorf("auth.api_keys[%d].key_file: %w", i, err)
			}
			cfg.Auth.APIKeys[i].Key = val
		}
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
