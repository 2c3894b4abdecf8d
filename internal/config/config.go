package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"toolbox/internal/constants"
	apperrors "toolbox/internal/errors"
	"toolbox/internal/logging"
)

// Config represents the application configuration
type Config struct {
	Window  WindowConfig  `json:"window"`
	Theme   ThemeConfig   `json:"theme"`
	Data    DataConfig    `json:"data"`
	Logging LoggingConfig `json:"logging"`
}

// WindowConfig represents window-related settings
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ThemeConfig represents theme-related settings
type ThemeConfig struct {
	Dark     bool `json:"dark"`
	FontSize int  `json:"fontSize"`
}

// DataConfig controls where user-apps.json and favorites.json live
type DataConfig struct {
	Dir string `json:"dir"` // empty means the config directory
}

// LoggingConfig represents logger settings
type LoggingConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

// envOverrides is filled from TOOLBOX_* environment variables.
// Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	DataDir  string `envconfig:"DATA_DIR"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	LogDev   *bool  `envconfig:"LOG_DEV"`
	Dark     *bool  `envconfig:"DARK"`
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
	logger     *zap.Logger
}

// NewManager creates a new configuration manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		configPath: getConfigPath(),
		logger:     logging.OrNop(logger),
	}
}

// NewManagerAt creates a configuration manager for an explicit file path
func NewManagerAt(path string, logger *zap.Logger) *Manager {
	return &Manager{
		configPath: path,
		logger:     logging.OrNop(logger),
	}
}

// Path returns the config file path
func (m *Manager) Path() string {
	return m.configPath
}

// Load loads configuration from file, merges with defaults and applies
// environment overrides
func (m *Manager) Load() (*Config, error) {
	// Start with default configuration
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		m.logger.Debug("Config file not found, using defaults",
			zap.String("path", m.configPath), zap.Error(err))
	} else {
		// Parse config file into a temporary config
		var fileConfig Config
		if err := json.Unmarshal(data, &fileConfig); err != nil {
			return nil, apperrors.NewConfigError("load_config", "error parsing config file", err)
		}
		mergeConfigs(config, &fileConfig)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	// Create the config directory if it doesn't exist
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// DataDir returns the directory holding the persisted registry files
func (c *Config) DataDir() string {
	if c.Data.Dir != "" {
		return c.Data.Dir
	}
	return DefaultDir()
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  constants.DefaultWindowWidth,
			Height: constants.DefaultWindowHeight,
		},
		Theme: ThemeConfig{
			Dark:     constants.DarkThemeDefault,
			FontSize: constants.DefaultFontSize,
		},
		Data: DataConfig{
			Dir: "",
		},
		Logging: LoggingConfig{
			Level:       constants.DefaultLogLevel,
			Development: false,
		},
	}
}

// DefaultDir returns the per-user application directory following OS conventions
func DefaultDir() string {
	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\intellicore\toolbox
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, constants.ApplicationVendor, constants.ApplicationName)

	case "darwin":
		// macOS: ~/Library/Application Support/intellicore/toolbox
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(home, "Library", "Application Support", constants.ApplicationVendor, constants.ApplicationName)

	default:
		// Linux/Unix: $XDG_CONFIG_HOME/intellicore/toolbox or ~/.config/intellicore/toolbox
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		return filepath.Join(xdgConfigHome, constants.ApplicationVendor, constants.ApplicationName)
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() string {
	return filepath.Join(DefaultDir(), constants.ConfigFileName)
}

// mergeConfigs merges file config values into default config
func mergeConfigs(defaultConfig *Config, fileConfig *Config) {
	if fileConfig.Window.Width != 0 {
		defaultConfig.Window.Width = fileConfig.Window.Width
	}
	if fileConfig.Window.Height != 0 {
		defaultConfig.Window.Height = fileConfig.Window.Height
	}

	// Note: for bool values, we can't distinguish between false and unset, so we always use file value
	defaultConfig.Theme.Dark = fileConfig.Theme.Dark
	if fileConfig.Theme.FontSize != 0 {
		defaultConfig.Theme.FontSize = fileConfig.Theme.FontSize
	}

	if fileConfig.Data.Dir != "" {
		defaultConfig.Data.Dir = fileConfig.Data.Dir
	}

	if fileConfig.Logging.Level != "" {
		defaultConfig.Logging.Level = fileConfig.Logging.Level
	}
	defaultConfig.Logging.Development = fileConfig.Logging.Development
}

// applyEnv overlays TOOLBOX_* environment variables onto config
func applyEnv(config *Config) error {
	var env envOverrides
	if err := envconfig.Process(constants.EnvPrefix, &env); err != nil {
		return apperrors.NewConfigError("load_env", "invalid environment override", err)
	}

	if env.DataDir != "" {
		config.Data.Dir = env.DataDir
	}
	if env.LogLevel != "" {
		config.Logging.Level = env.LogLevel
	}
	if env.LogDev != nil {
		config.Logging.Development = *env.LogDev
	}
	if env.Dark != nil {
		config.Theme.Dark = *env.Dark
	}
	return nil
}
