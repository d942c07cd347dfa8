package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The args are filtered with flagx.FilterArgs first so flags owned by other
// loaders (such as -c) do not cause parse errors.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-t", "-d", "-l", "-z"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the user records API")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 disables)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to local database file")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "collation locale for sorting")
	fs.StringVar(&cfg.TimeZone, "z", cfg.TimeZone, "time zone for month labels")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
