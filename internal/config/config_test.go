package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaultsAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("PUBLIC_API_BASE_URL", "https://api.example.com")

	require.NoError(t, Init(dir))
	cfg := GetConfig()

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "admin", Admin().Username)
	assert.Equal(t, "from-env", Admin().Password)
	assert.Equal(t, "admin_token", Admin().CookieName)
	assert.Equal(t, 7*24*3600, Admin().CookieMaxAge)
	assert.True(t, Admin().ProtectAPI)
	assert.Equal(t, "https://api.example.com", Site().PublicAPIBaseURL)
	assert.Equal(t, "memory", cfg.Cache.Driver)
}

func TestInitReadsYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("app:\n  port: 9090\nadmin:\n  username: root\n  protect_api: false\ncron:\n  reconcile_spec: \"\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	require.NoError(t, Init(dir))
	cfg := GetConfig()

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "root", Admin().Username)
	assert.False(t, Admin().ProtectAPI)
	assert.Empty(t, cfg.Cron.ReconcileSpec)
	assert.Equal(t, "utf8mb4", cfg.MySQL.Charset)
}
