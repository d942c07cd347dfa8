package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.ListenAddr)
	assert.Empty(t, c.DatabaseDSN, "in-memory store by default")
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 60*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "admin", c.AdminUsername)
	assert.Equal(t, "admin", c.AdminPassword)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout)
}
