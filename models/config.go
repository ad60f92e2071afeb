package models

import (
	"strings"
	"time"
)

type Config struct {
	LogFile         string        `json:"log_file" yaml:"log_file"`
	LogLevel        string        `json:"log_level" yaml:"log_level"`
	RefreshInterval time.Duration `json:"refresh_interval" yaml:"refresh_interval"`
}

var DefaultConfig = Config{
	LogFile:         "",
	LogLevel:        "info",
	RefreshInterval: 100 * time.Millisecond,
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return &ConfigError{Field: "refresh_interval", Message: "refresh interval must be positive"}
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig.LogLevel
	}

	level := strings.ToLower(c.LogLevel)
	for _, l := range validLogLevels {
		if level == l {
			c.LogLevel = level
			return nil
		}
	}

	return &ConfigError{Field: "log_level", Message: "unknown log level " + c.LogLevel}
}

// LoggingEnabled reports whether a log destination was configured.
func (c *Config) LoggingEnabled() bool {
	return strings.TrimSpace(c.LogFile) != ""
}

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
