package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"predstats/internal/config"
)

func testAppConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.Fetch.SourceURL = "https://example.com/matches.csv"
	return &cfg
}

func TestNewWithConfig(t *testing.T) {
	app, err := NewWithConfig(testAppConfig(t))
	require.NoError(t, err)
	defer app.Store.Close()

	assert.NotNil(t, app.Builder)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":8080", app.Server.Addr)
}

func TestNewWithConfigBadStorePath(t *testing.T) {
	cfg := testAppConfig(t)
	// a path whose parent is a file cannot be created
	cfg.Store.Path = filepath.Join("app_test.go", "impossible", "app.db")

	_, err := NewWithConfig(cfg)
	require.Error(t, err)
}
