package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (e.g., ":5000")
//	-d string   PostgreSQL DSN, empty for the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   admin username
//	-p string   admin password
//	-o string   comma-separated CORS origins
//
// Duration flags are accepted as integers in minutes.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-u", "-p", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&cfg.AdminUsername, "u", cfg.AdminUsername, "admin username")
	fs.StringVar(&cfg.AdminPassword, "p", cfg.AdminPassword, "admin password")
	origins := fs.String("o", "", "comma-separated CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	if *origins != "" {
		cfg.CORSOrigins = parseCSV(*origins)
	}
}
