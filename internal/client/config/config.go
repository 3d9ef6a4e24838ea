package config

import "time"

// Config holds runtime settings for the forum CLI.
type Config struct {
	// ServerURL is the scheme://host:port of the forum HTTP API.
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
