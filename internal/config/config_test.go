package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "localhost"
user = "turf"
password = "from-file"
dbname = "turf"

[auth]
mode = "jwt"
jwt_secret = "secret"

[redis]
enabled = true
addr = "localhost:6379"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
	assert.Equal(t, 60, cfg.Redis.TTL)
	assert.Equal(t, 30, cfg.Booking.DefaultWindowDays)
	assert.Equal(t, 90, cfg.Booking.MaxWindowDays)
	assert.Contains(t, cfg.Database.DSN(), "dbname=turf")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("TURF_DATABASE_PASSWORD", "from-env")
	t.Setenv("TURF_SERVER_HTTPPORT", "9090")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "turf", cfg.Database.User)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing jwt secret",
			content: `
[database]
host = "localhost"
dbname = "turf"
`,
		},
		{
			name: "redis enabled without addr",
			content: `
[database]
host = "localhost"
dbname = "turf"
[auth]
jwt_secret = "secret"
[redis]
enabled = true
`,
		},
		{
			name: "unknown auth mode",
			content: `
[database]
host = "localhost"
dbname = "turf"
[auth]
mode = "ldap"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_BrokenToml(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	assert.ErrorIs(t, err, ErrDecodeFile)
}
