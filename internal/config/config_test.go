package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ENRICH_DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 48*time.Hour, cfg.Ingest.Freshness)
	assert.Equal(t, 2*time.Second, cfg.Crawler.Delay)
	assert.Equal(t, 10, cfg.Features.MaxPros)
	assert.Equal(t, 6, cfg.Features.MaxCons)
	assert.Equal(t, "9090", cfg.Metrics.Port)
	assert.Empty(t, cfg.Images.Bucket)
	assert.Equal(t, 30*time.Second, cfg.Images.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENRICH_DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/catalog")
	t.Setenv("ENRICH_CRAWLER_DELAY", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/catalog", cfg.Database.URL)
	assert.Equal(t, 5*time.Second, cfg.Crawler.Delay)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ENRICH_DATABASE_URL", "")
	yaml := []byte("features:\n  max_pros: 4\n  max_cons: 2\ningest:\n  freshness: 12h\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Features.MaxPros)
	assert.Equal(t, 2, cfg.Features.MaxCons)
	assert.Equal(t, 12*time.Hour, cfg.Ingest.Freshness)
}

func TestLoad_InvalidDriver(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENRICH_DATABASE_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}
