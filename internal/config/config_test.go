package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
	assert.Equal(t, DefaultPerplexityModel, cfg.PerplexityModel)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout())
	assert.Equal(t, time.Minute, cfg.SweepInterval())
	assert.Equal(t, 1000, cfg.CacheMaxEntries)
}

func TestLoadFrom_MergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"NUCLEUS_GEMINI_API_KEY": "file-key",
		"NUCLEUS_GEMINI_MODEL": "gemini-2.5-pro",
		"NUCLEUS_CACHE_MAX_ENTRIES": 50
	}`), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.Equal(t, 50, cfg.CacheMaxEntries)
	assert.Equal(t, DefaultPerplexityModel, cfg.PerplexityModel, "unset fields keep defaults")
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"NUCLEUS_GEMINI_API_KEY": "file-key"}`), 0600))

	t.Setenv("NUCLEUS_GEMINI_API_KEY", "env-key")
	t.Setenv("NUCLEUS_PROVIDER_TIMEOUT_SECS", "30")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout())
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Default().GeminiModel, cfg.GeminiModel)
}

func TestLoadFrom_CorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default().CacheMaxEntries, cfg.CacheMaxEntries)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"NUCLEUS_CACHE_MAX_ENTRIES": 10}`), 0600))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloaded := make(chan *Config, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(cfg *Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"NUCLEUS_CACHE_MAX_ENTRIES": 99}`), 0600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 99, cfg.CacheMaxEntries)
	case <-ctx.Done():
		t.Fatal("watcher did not reload in time")
	}

	cancel()
	<-done
}
