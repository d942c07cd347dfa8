package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
	"github.com/dmitrijs2005/userdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a file can override only some
// settings.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DatabasePath        *string         `json:"database_path"`
	Locale              *string         `json:"locale"`
	TimeZone            *string         `json:"time_zone"`

	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without such a flag it does nothing. Read and decode
// errors panic, like flag errors in parseFlags.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.Locale, jc.Locale)
	setString(&cfg.TimeZone, jc.TimeZone)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
