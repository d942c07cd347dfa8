// Package config loads runtime configuration for the UserDesk console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the user records API
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds, 0 disables)
//	-d string   path of the local sqlite database
//	-l string   collation locale used when sorting the directory
//	-z string   IANA time zone for the month histogram
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Missing keys keep their current value:
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "database_path": "userdesk.db",
//	  "locale": "en",
//	  "time_zone": "Europe/Riga",
//	  "s3_bucket": "reports",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://localhost:9000",
//	  "s3_access_key": "minio",
//	  "s3_secret_key": "minio123"
//	}
//
// S3 settings are only read from JSON so secrets stay off the command line.
package config
