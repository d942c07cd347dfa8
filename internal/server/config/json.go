package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
	"github.com/dmitrijs2005/userdesk/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file. Pointer
// fields let a file override only some settings.
type JsonConfig struct {
	ListenAddr                  *string         `json:"listen_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AdminUsername               *string         `json:"admin_username"`
	AdminPassword               *string         `json:"admin_password"`
	CORSOrigins                 []string        `json:"cors_origins"`
	ShutdownTimeout             *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays cfg with the JSON file named by -c or -config.
// Without such a flag it does nothing; read or decode errors panic.
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

	setString(&cfg.ListenAddr, jc.ListenAddr)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.AdminUsername, jc.AdminUsername)
	setString(&cfg.AdminPassword, jc.AdminPassword)

	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if len(jc.CORSOrigins) > 0 {
		cfg.CORSOrigins = jc.CORSOrigins
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
