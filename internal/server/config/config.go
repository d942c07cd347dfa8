// Package config handles configuration for the reference server: defaults,
// a JSON file, a .env file plus the process environment, and command-line
// flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the UserDesk server.
//
// An empty DatabaseDSN selects the in-memory repository. AdminUsername and
// AdminPassword are the only credentials POST /login accepts.
type Config struct {
	ListenAddr                  string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	AdminUsername               string
	AdminPassword               string
	CORSOrigins                 []string
	ShutdownTimeout             time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and admin password must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.AdminUsername = "admin"
	c.AdminPassword = "admin"
	c.CORSOrigins = []string{"*"}
	c.ShutdownTimeout = 15 * time.Second
}

// LoadConfig builds a Config from defaults, then the optional JSON file,
// then .env and the environment, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg, envLookup(".env"))
	parseFlags(cfg, os.Args[1:])
	return cfg
}
