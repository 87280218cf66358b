package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigPathEnv names an explicit config file
	ConfigPathEnv = "CONFIG_PATH"
	// DefaultConfigFileName is picked up from the working directory when present
	DefaultConfigFileName = "pixelgrid.yaml"
)

// CommandConfig represents a generic command configuration
type CommandConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:",inline"`
}

// ServiceConfig holds the settings for one pixelgrid run
type ServiceConfig struct {
	LogLevel          string          `yaml:"logLevel" validate:"oneof=debug info warn error"`
	Scale             int             `yaml:"scale" validate:"min=1,max=512"`
	FontScale         float64         `yaml:"fontScale" validate:"gt=0,lte=1"`
	FontPath          string          `yaml:"fontPath"`
	OutputSuffix      string          `yaml:"outputSuffix" validate:"required,excludesall=/\\"`
	DefaultExtension  string          `yaml:"defaultExtension" validate:"required,alphanum"`
	SvgFallbackWidth  int             `yaml:"svgFallbackWidth" validate:"min=0"`
	SvgFallbackHeight int             `yaml:"svgFallbackHeight" validate:"min=0"`
	Commands          []CommandConfig `yaml:"commands"`
}

// DefaultConfig returns the configuration used when no config file is present
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		LogLevel:         "warn",
		Scale:            40,
		FontScale:        0.5,
		OutputSuffix:     "_labeled",
		DefaultExtension: "png",
	}
}

// LoadConfig loads configuration from the specified YAML file.
// Keys missing from the file keep their default values.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	if err := validateCommands(config.Commands); err != nil {
		return nil, fmt.Errorf("invalid command configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnvironment loads the config named by CONFIG_PATH, or
// pixelgrid.yaml from the working directory, or falls back to defaults
func LoadConfigFromEnvironment() (*ServiceConfig, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(configPath)
}

// resolveConfigPath returns an empty path when no config file is in play
func resolveConfigPath() (string, error) {
	if configPath := os.Getenv(ConfigPathEnv); configPath != "" {
		return configPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}

	candidate := filepath.Join(cwd, DefaultConfigFileName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to inspect config file %s: %w", candidate, err)
	}
	return candidate, nil
}

// validateCommands ensures all command configurations have required fields
func validateCommands(commands []CommandConfig) error {
	seenNames := make(map[string]bool)

	for i, cmd := range commands {
		if cmd.Name == "" {
			return fmt.Errorf("command at index %d has empty name", i)
		}

		if seenNames[cmd.Name] {
			return fmt.Errorf("duplicate command name: %s", cmd.Name)
		}
		seenNames[cmd.Name] = true
	}

	return nil
}
