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
http_port = 9090
admin_user_ids = [1, 7]

[database]
driver = "postgres"
host = "db"
port = 5433
user = "shareit"
password = "secret"
dbname = "shareit"

[logs]
level = "debug"

[booking]
forbid_overlap = false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileOverDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, []int64{1, 7}, cfg.Server.AdminUserIDs)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.False(t, cfg.Booking.ForbidOverlap)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHAREIT_SERVER_HTTP_PORT", "7070")
	t.Setenv("SHAREIT_DATABASE_HOST", "pg.internal")
	t.Setenv("SHAREIT_BOOKING_FORBID_OVERLAP", "true")
	t.Setenv("SHAREIT_SERVER_ADMIN_USER_IDS", "3,4")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.True(t, cfg.Booking.ForbidOverlap)
	assert.Equal(t, []int64{3, 4}, cfg.Server.AdminUserIDs)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SHAREIT_DATABASE_DB_NAME", "shareit")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.True(t, cfg.Booking.ForbidOverlap)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.DBName = "shareit"
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "mysql"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Database.Driver = "sqlite"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg.Database.Path = "shareit.db"
	assert.NoError(t, cfg.Validate())

	cfg.Server.AdminUserIDs = []int64{1, 0}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg.Server.AdminUserIDs = []int64{1}
	assert.NoError(t, cfg.Validate())

	cfg.Events.Enabled = true
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestDSN(t *testing.T) {
	d := Database{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "shareit", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/shareit?sslmode=disable", d.DSN())

	d = Database{Driver: "sqlite", Path: "/tmp/shareit.db"}
	assert.Contains(t, d.DSN(), "file:/tmp/shareit.db?")
	assert.Contains(t, d.DSN(), "_time_format=sqlite")
}
