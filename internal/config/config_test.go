package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsdfat8/kitcheck/internal/domain/ports"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, 2.0, cfg.Engine.HeavyLensThresholdKg)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9000
database:
  type: postgres
  postgres:
    host: db.internal
    connMaxLifetime: 2m
engine:
  heavyLensThresholdKg: 3.5
  adapterFile: adapters.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("KITCHECK_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3.5, cfg.Engine.HeavyLensThresholdKg)
	assert.Equal(t, "adapters.yaml", cfg.Engine.AdapterFile)

	dc := cfg.DatabaseAdapterConfig()
	assert.Equal(t, ports.DatabaseTypePostgreSQL, dc.Type)
	require.NotNil(t, dc.PostgresConfig)
	assert.Equal(t, "db.internal", dc.PostgresConfig.Host)
	assert.Equal(t, 5432, dc.PostgresConfig.Port)
	assert.Equal(t, 120, dc.PostgresConfig.ConnMaxLifetime)
	assert.Nil(t, dc.MongoDBConfig)
}

func TestValidate(t *testing.T) {
	base := Config{Server: ServerConfig{Port: 8080}, Database: DatabaseConfig{Type: "memory"}}
	require.NoError(t, base.Validate())

	bad := base
	bad.Database.Type = "sqlite"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Server.Port = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.Engine.HeavyLensThresholdKg = -1
	assert.Error(t, bad.Validate())

	bad = base
	bad.Server.TLSCertFile = "cert.pem"
	assert.Error(t, bad.Validate())
}
