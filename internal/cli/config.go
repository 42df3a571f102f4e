package cli

import (
	"fmt"
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("TTTGAME_SERVER", "http://localhost:8080"),
		Output:    "text",
		Verbose:   false,
	}
}

// Validate checks the flag values
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.Output)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server URL must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
