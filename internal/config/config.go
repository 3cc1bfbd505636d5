package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the persisted sm2env settings
type Config struct {
	AWSProfile    string `yaml:"aws_profile,omitempty"`
	AWSRegion     string `yaml:"aws_region,omitempty"`
	DefaultOutput string `yaml:"default_output,omitempty"` // stdout, json, env, yaml, csv
}

// GetConfigDir returns the config directory path (~/.sm2env)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sm2env"
	}
	return filepath.Join(home, ".sm2env")
}

// GetConfigPath returns the config file path (~/.sm2env/config.yaml)
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// LoadConfig loads the configuration from ~/.sm2env/config.yaml
func LoadConfig() (*Config, error) {
	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves the configuration to ~/.sm2env/config.yaml
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(GetConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SetProfile updates the AWS profile in the config
func SetProfile(profileName string) error {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = &Config{}
	}

	cfg.AWSProfile = profileName
	return SaveConfig(cfg)
}

// GetSavedProfile returns the saved AWS profile from config
func GetSavedProfile() string {
	cfg, err := LoadConfig()
	if err != nil {
		return ""
	}
	return cfg.AWSProfile
}

// GetDefaultOutput returns the saved default output format, if any
func GetDefaultOutput() string {
	cfg, err := LoadConfig()
	if err != nil {
		return ""
	}
	return cfg.DefaultOutput
}
