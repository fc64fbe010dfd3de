// Package config provides configuration management for searchbar.
// It handles loading, merging, and accessing configuration from the embedded
// defaults, the user config file and the system config file.
package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lvim-tech/searchbar/internal/utils"
)

//go:embed default.toml
var defaultConfigData string

// AppName is used for config directories.
const AppName = "searchbar"

// Config is the effective configuration.
type Config struct {
	DefaultLauncher string             `toml:"default_launcher"`
	Launchers       LauncherConfig     `toml:"launchers"`
	Settings        SettingsConfig     `toml:"settings"`
	Notifications   NotificationConfig `toml:"notifications"`
	Log             LogConfig          `toml:"log"`
}

// LauncherConfig holds the arguments for each menu program
type LauncherConfig struct {
	Dmenu  LauncherCommand `toml:"dmenu"`
	Rofi   LauncherCommand `toml:"rofi"`
	Fzf    LauncherCommand `toml:"fzf"`
	Bemenu LauncherCommand `toml:"bemenu"`
	Fuzzel LauncherCommand `toml:"fuzzel"`
}

// LauncherCommand describes extra arguments passed to a launcher
type LauncherCommand struct {
	Args []string `toml:"args"`
}

// SettingsConfig selects the settings store
type SettingsConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// NotificationConfig controls desktop notifications
type NotificationConfig struct {
	Enabled        bool   `toml:"enabled"`
	Tool           string `toml:"tool"`
	Timeout        int    `toml:"timeout"`
	Urgency        string `toml:"urgency"`
	ShowInTerminal bool   `toml:"show_in_terminal"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `toml:"level"`
}

// SettingsConfigFile is read from TOML (pointers for optional fields)
type SettingsConfigFile struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// NotificationConfigFile is read from TOML
type NotificationConfigFile struct {
	Enabled        *bool   `toml:"enabled"`
	Tool           *string `toml:"tool"`
	Timeout        *int    `toml:"timeout"`
	Urgency        *string `toml:"urgency"`
	ShowInTerminal *bool   `toml:"show_in_terminal"`
}

// LogConfigFile is read from TOML
type LogConfigFile struct {
	Level *string `toml:"level"`
}

// ConfigFile is the shape of a user or system config file
type ConfigFile struct {
	DefaultLauncher *string                `toml:"default_launcher"`
	Launchers       LauncherConfig         `toml:"launchers"`
	Settings        SettingsConfigFile     `toml:"settings"`
	Notifications   NotificationConfigFile `toml:"notifications"`
	Log             LogConfigFile          `toml:"log"`
}

// GetConfigDir returns the searchbar config directory
func GetConfigDir() string {
	return filepath.Join(utils.GetConfigDir(), AppName)
}

// GetUserConfigPath returns the path of the user config
func GetUserConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// GetSystemConfigPath returns the path of the system config
func GetSystemConfigPath() string {
	return filepath.Join("/etc", AppName, "config.toml")
}

// Load merges the defaults with the user config, or with the system config
// when there is no user config. Warnings go to stderr.
func Load() (*Config, error) {
	return LoadFrom(GetUserConfigPath(), GetSystemConfigPath(), os.Stderr)
}

// LoadFrom is Load with explicit paths. The first existing path wins; a file
// that fails to parse is reported on warn and the defaults are used.
func LoadFrom(userPath, systemPath string, warn io.Writer) (*Config, error) {
	// 1. Load defaults
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	// 2. Try user config, then system config
	for _, path := range []string{userPath, systemPath} {
		if path == "" || !utils.FileExists(path) {
			continue
		}

		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			fmt.Fprintf(warn, "Warning: failed to load config %s: %v\n", path, err)
			fmt.Fprintf(warn, "Using default configuration\n")
			return defaultCfg, nil
		}
		return mergeConfigs(defaultCfg, fileCfg), nil
	}

	// 3. Only defaults
	return defaultCfg, nil
}

// loadDefaultConfig decodes the embedded default config
func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromFile decodes a config file
func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	if _, err := toml.DecodeFile(utils.ExpandPath(path), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges a config file over the defaults (file values win)
func mergeConfigs(defaultCfg *Config, fileCfg *ConfigFile) *Config {
	merged := *defaultCfg

	if fileCfg.DefaultLauncher != nil && *fileCfg.DefaultLauncher != "" {
		merged.DefaultLauncher = *fileCfg.DefaultLauncher
	}

	mergeLauncherConfigs(&merged.Launchers, &fileCfg.Launchers)
	mergeSettingsConfig(&merged.Settings, &fileCfg.Settings)
	mergeNotificationConfig(&merged.Notifications, &fileCfg.Notifications)

	if fileCfg.Log.Level != nil && *fileCfg.Log.Level != "" {
		merged.Log.Level = *fileCfg.Log.Level
	}

	return &merged
}

// mergeLauncherConfigs merges launcher args
func mergeLauncherConfigs(merged *LauncherConfig, user *LauncherConfig) {
	if user.Dmenu.Args != nil {
		merged.Dmenu.Args = user.Dmenu.Args
	}
	if user.Rofi.Args != nil {
		merged.Rofi.Args = user.Rofi.Args
	}
	if user.Fzf.Args != nil {
		merged.Fzf.Args = user.Fzf.Args
	}
	if user.Bemenu.Args != nil {
		merged.Bemenu.Args = user.Bemenu.Args
	}
	if user.Fuzzel.Args != nil {
		merged.Fuzzel.Args = user.Fuzzel.Args
	}
}

// mergeSettingsConfig merges the settings store selection
func mergeSettingsConfig(merged *SettingsConfig, user *SettingsConfigFile) {
	if user.Backend != nil && *user.Backend != "" {
		merged.Backend = *user.Backend
	}
	if user.Path != nil {
		merged.Path = *user.Path
	}
}

// mergeNotificationConfig merges notification settings
func mergeNotificationConfig(merged *NotificationConfig, user *NotificationConfigFile) {
	if user.Enabled != nil {
		merged.Enabled = *user.Enabled
	}
	if user.Tool != nil && *user.Tool != "" {
		merged.Tool = *user.Tool
	}
	if user.Timeout != nil {
		merged.Timeout = *user.Timeout
	}
	if user.Urgency != nil && *user.Urgency != "" {
		merged.Urgency = *user.Urgency
	}
	if user.ShowInTerminal != nil {
		merged.ShowInTerminal = *user.ShowInTerminal
	}
}

// GetLauncherArgs returns the extra arguments for a launcher
func (c *Config) GetLauncherArgs(name string) []string {
	switch name {
	case "dmenu":
		return c.Launchers.Dmenu.Args
	case "rofi":
		return c.Launchers.Rofi.Args
	case "fzf":
		return c.Launchers.Fzf.Args
	case "bemenu":
		return c.Launchers.Bemenu.Args
	case "fuzzel":
		return c.Launchers.Fuzzel.Args
	default:
		return nil
	}
}

// SettingsPath returns the expanded settings path, empty for the default
func (c *Config) SettingsPath() string {
	if c.Settings.Path == "" {
		return ""
	}
	return utils.ExpandPath(c.Settings.Path)
}

// InitUserConfig writes the default config to path
func InitUserConfig(path string) error {
	if utils.FileExists(path) {
		return fmt.Errorf("config already exists: %s", path)
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigData), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
