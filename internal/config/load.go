package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables holding credentials.
const (
	EnvAPIKey      = "LINGUA_API_KEY"
	EnvProjectID   = "LINGUA_PROJECT_ID"
	EnvAccessToken = "LINGUA_ACCESS_TOKEN"
	EnvGeminiKeys  = "GEMINI_API_KEYS"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "LINGUA_CONFIG"
)

const DefaultPath = "config.yaml"

// Path returns the config file location from the environment, or DefaultPath.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path, pulls credentials from the environment
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Credentials = credentialsFromEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a config from defaults and environment credentials alone,
// for deployments that ship no config file.
func FromEnv() (*Config, error) {
	cfg := Config{Credentials: credentialsFromEnv(os.Getenv)}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func credentialsFromEnv(getenv func(string) string) CredentialsConfig {
	creds := CredentialsConfig{
		APIKey:      strings.TrimSpace(getenv(EnvAPIKey)),
		ProjectID:   strings.TrimSpace(getenv(EnvProjectID)),
		AccessToken: strings.TrimSpace(getenv(EnvAccessToken)),
	}

	for _, key := range strings.Split(getenv(EnvGeminiKeys), ",") {
		if key = strings.TrimSpace(key); key != "" {
			creds.GeminiKeys = append(creds.GeminiKeys, key)
		}
	}

	return creds
}
