// Package config provides configuration management for the overlay renderer.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"image-translator/internal/logger"
)

const (
	// DefaultConfigFileName is the default configuration file name
	DefaultConfigFileName = "image-translator-config.json"
	// EnvOpenAIAPIKey is the environment variable name for the OpenAI API key
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	// EnvOpenAIBaseURL is the environment variable name for the OpenAI base URL
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	// EnvStorageDir is the environment variable overriding the storage root
	EnvStorageDir = "STORAGE_DIR"
	// DefaultBaseURL is the default OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is the default multimodal model for page analysis
	DefaultModel = "gpt-4o"
	// DefaultTargetLanguage is the language replacement text is produced in
	DefaultTargetLanguage = "English"
	// DefaultStorageDir is the default job storage root
	DefaultStorageDir = "storage/jobs"
	// DefaultDPI is the raster density pages are rendered at
	DefaultDPI = 144
	// DefaultScope is the default replacement scope
	DefaultScope = "headings"
)

// Config holds the persisted application settings.
type Config struct {
	OpenAIAPIKey   string `json:"openai_api_key"`
	OpenAIBaseURL  string `json:"openai_base_url"`
	OpenAIModel    string `json:"openai_model"`
	TargetLanguage string `json:"target_language"`
	StorageDir     string `json:"storage_dir"`
	DPI            int    `json:"dpi"`
	OverlayScope   string `json:"overlay_scope"`
}

// Manager loads and persists a Config file, with environment fallbacks for
// the OpenAI credentials and the storage root.
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a Manager for the given config path. An empty path
// resolves to ~/.config/image-translator/.
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(homeDir, ".config", "image-translator", DefaultConfigFileName)
	}
	return &Manager{configPath: configPath, config: defaultConfig()}, nil
}

func defaultConfig() *Config {
	return &Config{
		OpenAIBaseURL:  DefaultBaseURL,
		OpenAIModel:    DefaultModel,
		TargetLanguage: DefaultTargetLanguage,
		StorageDir:     DefaultStorageDir,
		DPI:            DefaultDPI,
		OverlayScope:   DefaultScope,
	}
}

// Load reads the config file. A missing or malformed file falls back to
// defaults; empty fields are backfilled after parsing.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("config file not found, using defaults",
				logger.String("path", m.configPath))
			m.config = defaultConfig()
			return nil
		}
		return err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("invalid config file, using defaults",
			logger.String("path", m.configPath), logger.Err(err))
		m.config = defaultConfig()
		return nil
	}

	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = DefaultBaseURL
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = DefaultModel
	}
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = DefaultTargetLanguage
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = DefaultStorageDir
	}
	if cfg.DPI == 0 {
		cfg.DPI = DefaultDPI
	}
	if cfg.OverlayScope == "" {
		cfg.OverlayScope = DefaultScope
	}
	m.config = cfg

	logger.Info("configuration loaded",
		logger.String("path", m.configPath),
		logger.String("model", cfg.OpenAIModel),
		logger.Int("dpi", cfg.DPI),
		logger.String("scope", cfg.OverlayScope))
	return nil
}

// Save writes the current configuration to disk.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.configPath, data, 0600)
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() *Config {
	if m.config == nil {
		return defaultConfig()
	}
	return m.config
}

// GetConfigPath returns the path of the config file.
func (m *Manager) GetConfigPath() string { return m.configPath }

// GetAPIKey returns the API key from the config file, falling back to the
// environment.
func (m *Manager) GetAPIKey() string {
	if m.config != nil && m.config.OpenAIAPIKey != "" {
		return m.config.OpenAIAPIKey
	}
	return os.Getenv(EnvOpenAIAPIKey)
}

// GetBaseURL returns the API base URL from the config file, then the
// environment, then the default.
func (m *Manager) GetBaseURL() string {
	if m.config != nil && m.config.OpenAIBaseURL != "" && m.config.OpenAIBaseURL != DefaultBaseURL {
		return m.config.OpenAIBaseURL
	}
	if env := os.Getenv(EnvOpenAIBaseURL); env != "" {
		return env
	}
	return DefaultBaseURL
}

// GetStorageDir returns the job storage root, preferring the environment
// override.
func (m *Manager) GetStorageDir() string {
	if env := os.Getenv(EnvStorageDir); env != "" {
		return env
	}
	if m.config != nil && m.config.StorageDir != "" {
		return m.config.StorageDir
	}
	return DefaultStorageDir
}

// GetModel returns the analysis model name.
func (m *Manager) GetModel() string {
	if m.config != nil && m.config.OpenAIModel != "" {
		return m.config.OpenAIModel
	}
	return DefaultModel
}

// GetTargetLanguage returns the replacement text language.
func (m *Manager) GetTargetLanguage() string {
	if m.config != nil && m.config.TargetLanguage != "" {
		return m.config.TargetLanguage
	}
	return DefaultTargetLanguage
}

// GetDPI returns the raster density.
func (m *Manager) GetDPI() int {
	if m.config != nil && m.config.DPI > 0 {
		return m.config.DPI
	}
	return DefaultDPI
}

// GetScope returns the configured replacement scope string, unvalidated.
func (m *Manager) GetScope() string {
	if m.config != nil && m.config.OverlayScope != "" {
		return m.config.OverlayScope
	}
	return DefaultScope
}
