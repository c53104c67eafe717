package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/test.db
session:
  jwt_secret: super-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hotelier", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 86400, cfg.Session.TTLSeconds)
	assert.Equal(t, "hotelier", cfg.Session.JWTIssuer)
	assert.Equal(t, float64(1), cfg.RateLimit.SignInRPS)
	assert.Equal(t, 5, cfg.RateLimit.SignInBurst)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "from-env")
	t.Setenv("TEST_REDIS_ADDR", "localhost:6379")

	path := writeConfig(t, `
database:
  path: data/test.db
redis:
  address: ${TEST_REDIS_ADDR}
session:
  jwt_secret: ${TEST_JWT_SECRET}
admins:
  - boss@example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.JWTSecret)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, []string{"boss@example.com"}, cfg.Admins)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing database path", func(t *testing.T) {
		path := writeConfig(t, `
session:
  jwt_secret: super-secret
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		path := writeConfig(t, `
database:
  path: data/test.db
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("placeholder jwt secret", func(t *testing.T) {
		path := writeConfig(t, `
database:
  path: data/test.db
session:
  jwt_secret: CHANGE_ME
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
