package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".obsreport"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .obsreport configuration file.
// Pointer fields distinguish "not set" from an explicit false.
type File struct {
	// Format is the default output format code.
	Format string `yaml:"format,omitempty"`

	// Output is the default output file path.
	Output string `yaml:"output,omitempty"`

	// Color enables or disables ANSI colour in text output.
	Color *bool `yaml:"color,omitempty"`

	// History enables or disables saving renders to the history database.
	History *bool `yaml:"history,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"db_dir,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`

	// JSONLog switches log output to JSON.
	JSONLog bool `yaml:"json_log,omitempty"`
}

// LoadConfigFile loads the configuration file at path.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .obsreport in the current directory
// 3. Look for .obsreport in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
