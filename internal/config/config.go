package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultFormat is the human-readable format code.
	DefaultFormat = "N"

	// AppName is the application name used for XDG directory paths.
	AppName = "obsreport"
)

// Config holds all configuration options for obsreport.
// This struct is populated from the configuration file and CLI flags and is
// passed through the application rather than kept in global state.
type Config struct {
	// Format is the output format code (N, J, D or S, case-insensitive).
	Format string

	// InputFiles are the result files to render, in order.
	InputFiles []string

	// OutputFile is the path to write the rendered output to.
	// When empty, output goes to stdout.
	OutputFile string

	// Color enables ANSI colour in the text formats.
	Color bool

	// SaveHistory stores every successful render in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/obsreport on Linux).
	DBDir string

	// Verbose enables debug logging.
	Verbose bool

	// JSONLog switches log output from text to JSON.
	JSONLog bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .obsreport is searched in the current and home directories.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		Color:       true,
		SaveHistory: true,
		DBDir:       XDGDataDir(),
	}
}

// ApplyFile copies the values set in the configuration file onto c.
// Unset file values leave c unchanged.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Output != "" {
		c.OutputFile = f.Output
	}
	if f.Color != nil {
		c.Color = *f.Color
	}
	if f.History != nil {
		c.SaveHistory = *f.History
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
	if f.Verbose {
		c.Verbose = true
	}
	if f.JSONLog {
		c.JSONLog = true
	}
}

// XDGDataDir returns the XDG data directory for obsreport.
// On Linux: ~/.local/share/obsreport
// On macOS: ~/Library/Application Support/obsreport
// On Windows: %LOCALAPPDATA%\obsreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for obsreport.
// On Linux: ~/.config/obsreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.InputFiles) == 0 {
		return ErrNoInput
	}

	if c.Format == "" {
		return ErrNoFormat
	}

	if c.SaveHistory && c.DBDir == "" {
		return ErrNoHistoryDir
	}

	return nil
}
