package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
)

const sampleConfig = `
[server]
http_port = 9000

[database]
host = "db"
password = "from-file"

[auth]
jwt_secret = "file-secret"

[booking]
platform_fee_percent = 15.0

[catalog]
services = ["Coffee Date", "City Tour"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMergesFileDefaultsAndEnv(t *testing.T) {
	t.Setenv("COMPANION_DATABASE_PASSWORD", "from-env")
	t.Setenv("COMPANION_AUTH_JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout, "default kept")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15.0, cfg.Booking.PlatformFeePercent)
	assert.Equal(t, []string{"Coffee Date", "City Tour"}, cfg.Catalog.Services)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
}

func TestLoadKeepsDefaultCatalog(t *testing.T) {
	t.Setenv("COMPANION_AUTH_JWT_SECRET", "env-secret")
	before := append([]string(nil), domain.DefaultServiceTags...)

	_, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, before, domain.DefaultServiceTags)

	c := Default()
	c.Auth.JWTSecret = "secret"
	assert.Equal(t, before, c.Catalog.Services)
	assert.NoError(t, c.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Auth.JWTSecret = "secret"
		return c
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.Auth.JWTSecret = ""
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c = valid()
	c.Booking.PlatformFeePercent = 100
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c = valid()
	c.Catalog.Services = []string{"A", "A"}
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)

	c = valid()
	c.Notifier.Enabled = true
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}
