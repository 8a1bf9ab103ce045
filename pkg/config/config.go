/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/srex/pkg/codec"
)

// Config represents the srex configuration
type Config struct {
	Output  Output  `yaml:"output"`
	Input   Input   `yaml:"input"`
	Logging Logging `yaml:"logging"`
}

// Output controls how images are written
type Output struct {
	RecordSize   int    `yaml:"record_size"`   // Data bytes per S-Record
	AddressWidth string `yaml:"address_width"` // auto, 16, 24 or 32
	LineEnding   string `yaml:"line_ending"`   // lf or crlf
	FillByte     uint8  `yaml:"fill_byte"`     // Gap filler for binary output
}

// Input controls how images are read
type Input struct {
	Strict bool `yaml:"strict"`
}

// Logging contains logging configuration
type Logging struct {
	Verbosity int `yaml:"verbosity"`
}

// Validation errors
var (
	ErrInvalidRecordSize   = errors.New("output.record_size must be between 1 and 252")
	ErrInvalidAddressWidth = errors.New("output.address_width must be auto, 16, 24 or 32")
	ErrInvalidLineEnding   = errors.New("output.line_ending must be lf or crlf")
	ErrInvalidVerbosity    = errors.New("logging.verbosity must not be negative")
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: Output{
			RecordSize:   32,
			AddressWidth: "auto",
			LineEnding:   "lf",
			FillByte:     0xFF,
		},
		Input: Input{
			Strict: false,
		},
		Logging: Logging{
			Verbosity: 0,
		},
	}
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.Output.RecordSize < 1 || c.Output.RecordSize > codec.MaxDataBytes {
		return ErrInvalidRecordSize
	}
	if _, _, err := ParseAddressWidth(c.Output.AddressWidth); err != nil {
		return err
	}
	if _, err := ParseLineEnding(c.Output.LineEnding); err != nil {
		return err
	}
	if c.Logging.Verbosity < 0 {
		return ErrInvalidVerbosity
	}
	return nil
}

// ParseAddressWidth maps an address width setting to a data record type. The
// boolean is false for "auto", meaning the width follows the data.
func ParseAddressWidth(s string) (codec.RecordType, bool, error) {
	switch s {
	case "auto", "":
		return 0, false, nil
	case "16":
		return codec.TypeData16, true, nil
	case "24":
		return codec.TypeData24, true, nil
	case "32":
		return codec.TypeData32, true, nil
	}
	return 0, false, ErrInvalidAddressWidth
}

// ParseLineEnding maps a line ending setting to the characters written
func ParseLineEnding(s string) (string, error) {
	switch s {
	case "lf", "":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	}
	return "", ErrInvalidLineEnding
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// Validate path to prevent directory traversal
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes the default configuration to configPath
func BootstrapConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	// Use OS-specific default locations
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./srex.yaml"
	}

	// For Linux/macOS, use ~/.config/srex/config.yaml
	configDir := filepath.Join(homeDir, ".config", "srex")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
