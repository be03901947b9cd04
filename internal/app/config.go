package app

import (
	"fmt"
	"strings"
)

// Config holds everything an App instance needs to run.
type Config struct {
	// ListenAddr is the HTTP bind address for serve mode.
	ListenAddr string
	// DataPath is the base directory for the file-backed stores.
	DataPath string
	// LogFormat is "text" or "json".
	LogFormat string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// GraphPath, when set, switches to one-shot mode: load the
	// description at this path, execute it, print the result, exit.
	GraphPath string
	// InputsPath optionally names a JSON file of external inputs for
	// one-shot mode.
	InputsPath string
}

// NewConfig applies defaults and validates a Config.
func NewConfig(c Config) (*Config, error) {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8000"
	}
	if c.DataPath == "" {
		c.DataPath = "./data"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}

	if c.InputsPath != "" && c.GraphPath == "" {
		return nil, fmt.Errorf("-inputs requires -graph")
	}

	return &c, nil
}
