package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	assert.Contains(t, cfg.DSN(), "dbname=taskboard_db")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("db_driver: sqlite\ndb_path: /tmp/board.db\nserver_port: \"9000\"\njwt_expiry_minutes: 15\ndb_conn_max_lifetime: 2m\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/board.db", cfg.DSN())
	assert.Equal(t, "9100", cfg.ServerPort)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.Equal(t, 2*time.Minute, cfg.DBConnMaxLifetime)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Run("non numeric expiry", func(t *testing.T) {
		t.Setenv("JWT_EXPIRY_MINUTES", "soon")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := config.Load()
		assert.ErrorContains(t, err, "unsupported DB_DRIVER")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := config.Load()
		assert.ErrorContains(t, err, "read config file")
	})
}
