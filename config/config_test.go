package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ADMINDASH_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("ADMINDASH_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ADMINDASH_TEST_MISSING", "fallback"))
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		chdir(t, t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 10, cfg.Listing.PageSize)
		assert.Equal(t, 500*time.Millisecond, cfg.Listing.SearchDebounce)
	})

	t.Run("yaml file then env", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		path := filepath.Join(dir, "admindash.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: sqlite
  dsn: file.db
listing:
  page_size: 20
  search_debounce: 250ms
log:
  level: debug
`), 0o600))
		t.Setenv(EnvLogLevel, "warn")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "file.db", cfg.Database.DSN)
		assert.Equal(t, 20, cfg.Listing.PageSize)
		assert.Equal(t, 250*time.Millisecond, cfg.Listing.SearchDebounce)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("invalid values", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv(EnvDBDriver, "oracle")
		_, err := Load("")
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("invalid duration", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv(EnvClientTimeout, "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, EnvClientTimeout)
	})

	t.Run("rate limit", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv(EnvClientRateLimit, "2.5")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 2.5, cfg.Client.RateLimit)

		t.Setenv(EnvClientRateLimit, "-1")
		_, err = Load("")
		assert.ErrorContains(t, err, "rate limit")
	})

	t.Run("missing file", func(t *testing.T) {
		chdir(t, t.TempDir())
		_, err := Load("/does/not/exist.yaml")
		assert.Error(t, err)
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
