package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables carrying the service principal credentials.
const (
	EnvTenantID       = "TENANT_ID"
	EnvClientID       = "CLIENT_ID"
	EnvClientSecret   = "CLIENT_SECRET"
	EnvSubscriptionID = "SUBSCRIPTION_ID"
)

// Load returns the default workflow, overlaid with the YAML file at path when
// path is non-empty. Unknown keys in the file are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// decode overlays YAML data onto cfg. Lists in the file replace the defaults
// rather than merging element by element.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return nil
}

// LoadCredentials reads the service principal credentials from the environment.
// All four variables are required.
func LoadCredentials() (Credentials, error) {
	creds := Credentials{
		TenantID:       os.Getenv(EnvTenantID),
		ClientID:       os.Getenv(EnvClientID),
		ClientSecret:   os.Getenv(EnvClientSecret),
		SubscriptionID: os.Getenv(EnvSubscriptionID),
	}

	var missing []string
	for _, v := range []struct{ name, value string }{
		{EnvTenantID, creds.TenantID},
		{EnvClientID, creds.ClientID},
		{EnvClientSecret, creds.ClientSecret},
		{EnvSubscriptionID, creds.SubscriptionID},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return creds, nil
}
