package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	m, err := NewManager(path)
	require.NoError(t, err)
	return m, path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())

	cfg := m.GetConfig()
	assert.Equal(t, DefaultModel, cfg.OpenAIModel)
	assert.Equal(t, DefaultDPI, cfg.DPI)
	assert.Equal(t, DefaultScope, cfg.OverlayScope)
	assert.Equal(t, DefaultTargetLanguage, cfg.TargetLanguage)
}

func TestLoadBackfillsEmptyFields(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"openai_model":"gpt-4o-mini"}`), 0600))
	require.NoError(t, m.Load())

	cfg := m.GetConfig()
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, DefaultBaseURL, cfg.OpenAIBaseURL)
	assert.Equal(t, DefaultDPI, cfg.DPI)
}

func TestLoadInvalidJSONFallsBack(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))
	require.NoError(t, m.Load())
	assert.Equal(t, DefaultModel, m.GetConfig().OpenAIModel)
}

func TestSaveRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())
	m.GetConfig().DPI = 300
	m.GetConfig().OverlayScope = "all"
	require.NoError(t, m.Save())

	m2, err := NewManager(m.GetConfigPath())
	require.NoError(t, err)
	require.NoError(t, m2.Load())
	assert.Equal(t, 300, m2.GetDPI())
	assert.Equal(t, "all", m2.GetScope())
}

func TestAPIKeyEnvFallback(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())

	t.Setenv(EnvOpenAIAPIKey, "sk-env-key")
	assert.Equal(t, "sk-env-key", m.GetAPIKey())

	m.GetConfig().OpenAIAPIKey = "sk-file-key"
	assert.Equal(t, "sk-file-key", m.GetAPIKey())
}

func TestBaseURLEnvFallback(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())

	t.Setenv(EnvOpenAIBaseURL, "https://proxy.example.com/v1")
	assert.Equal(t, "https://proxy.example.com/v1", m.GetBaseURL())
}

func TestStorageDirEnvOverride(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Load())
	assert.Equal(t, DefaultStorageDir, m.GetStorageDir())

	t.Setenv(EnvStorageDir, "/data/jobs")
	assert.Equal(t, "/data/jobs", m.GetStorageDir())
}
