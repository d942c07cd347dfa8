package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names read by parseEnv.
const (
	EnvListenAddr    = "USERDESK_ADDR"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvJWTSecret     = "JWT_SECRET"
	EnvJWTTTLMinutes = "JWT_TTL_MINUTES"
	EnvAdminUsername = "ADMIN_USERNAME"
	EnvAdminPassword = "ADMIN_PASSWORD"
	EnvCORSOrigins   = "CORS_ALLOWED_ORIGINS"
)

type lookupFunc func(key string) (string, bool)

// envLookup resolves keys from the process environment first and then from
// the given .env files. Missing files are skipped; unreadable ones panic.
func envLookup(files ...string) lookupFunc {
	fromFiles := map[string]string{}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			panic(err)
		}
		for k, v := range m {
			if _, ok := fromFiles[k]; !ok {
				fromFiles[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fromFiles[key]
		return v, ok
	}
}

// parseEnv overlays cfg with non-empty environment values. A malformed
// JWT_TTL_MINUTES panics, like a malformed flag.
func parseEnv(cfg *Config, lookup lookupFunc) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvListenAddr); ok {
		cfg.ListenAddr = v
	}
	if v, ok := get(EnvDatabaseURL); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := get(EnvJWTSecret); ok {
		cfg.SecretKey = v
	}
	if v, ok := get(EnvJWTTTLMinutes); ok {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
	}
	if v, ok := get(EnvAdminUsername); ok {
		cfg.AdminUsername = v
	}
	if v, ok := get(EnvAdminPassword); ok {
		cfg.AdminPassword = v
	}
	if v, ok := get(EnvCORSOrigins); ok {
		cfg.CORSOrigins = parseCSV(v)
	}
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
