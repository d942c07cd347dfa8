package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the UserDesk console.
//
// Units: OnlineCheckInterval and RequestTimeout are time.Duration values.
// A zero RequestTimeout disables the per-request deadline.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	DatabasePath        string
	Locale              string
	TimeZone            string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "userdesk.db"
	c.Locale = "en"
	c.TimeZone = "Local"
	c.S3Region = "us-east-1"
}

// Location resolves TimeZone. "Local" and "" map to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// ExportToS3 reports whether reports should be uploaded instead of written locally.
func (c *Config) ExportToS3() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
