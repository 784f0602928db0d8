package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdouchement/bucketlist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:5000", cfg.Address)
	assert.Equal(t, config.DriverStorm, cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Token.TTL)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.EqualError(t, cfg.Validate(), "secret_key not found")
}

func TestLoadFileAndEnv(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bucketlist.yml")
	err := os.WriteFile(filename, []byte(`
address: 0.0.0.0:8080
secret_key: file-secret
database:
  driver: postgres
  dsn: postgres://localhost/bucketlist
token:
  ttl: 30m
log:
  format: json
`), 0o600)
	require.NoError(t, err)

	t.Setenv("BUCKETLIST_SECRET_KEY", "env-secret")
	t.Setenv("BUCKETLIST_PAGINATION__MAX_LIMIT", "50")
	t.Setenv("BUCKETLIST_NO_REGISTRATION", "true")

	cfg, err := config.Load(filename)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/bucketlist", cfg.Database.DSN)
	assert.Equal(t, 30*time.Minute, cfg.Token.TTL)
	assert.Equal(t, 50, cfg.Pagination.MaxLimit)
	assert.True(t, cfg.NoRegistration)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Config{
		SecretKey:  "secret",
		Database:   config.Database{Driver: config.DriverStorm},
		Pagination: config.Pagination{DefaultLimit: 20, MaxLimit: 100},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = config.DriverPostgres
	assert.EqualError(t, cfg.Validate(), "database.dsn not found")

	cfg.Database.Driver = "mysql"
	assert.EqualError(t, cfg.Validate(), "unsupported database driver: mysql")

	cfg.Database.Driver = config.DriverStorm
	cfg.Pagination.MaxLimit = 10
	assert.EqualError(t, cfg.Validate(), "invalid pagination limits")
}
