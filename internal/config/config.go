package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the gitpilot tool configuration. Git's own configuration is
// reached through the get-config/set-config commands instead.
type Config struct {
	SelectionMode string `mapstructure:"selection_mode" yaml:"selection_mode"`
	Remote        string `mapstructure:"remote" yaml:"remote"`
	DefaultBranch string `mapstructure:"default_branch" yaml:"default_branch"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	DryRun        bool   `mapstructure:"dry_run" yaml:"dry_run"`
}

const (
	DefaultSelectionMode = "multi"
	DefaultRemote        = "origin"
	DefaultBranch        = "main"
	DefaultConfigName    = "config"
	DefaultConfigDir     = "gitpilot"
	EnvPrefix            = "GITPILOT"
)

var validKeys = []string{"selection_mode", "remote", "default_branch", "log_file", "dry_run"}

// InitConfig loads the configuration file, creating it with defaults when missing.
func InitConfig(cfgFile string) error {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configPath := cfgFile
	if configPath == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(dir, DefaultConfigName+".yaml")
	}
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
		return createConfigFile(configPath)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("selection_mode", DefaultSelectionMode)
	viper.SetDefault("remote", DefaultRemote)
	viper.SetDefault("default_branch", DefaultBranch)
	viper.SetDefault("log_file", "")
	viper.SetDefault("dry_run", false)
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, DefaultConfigDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", DefaultConfigDir), nil
}

func createConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// GetConfig returns the effective configuration.
func GetConfig() (*Config, error) {
	setDefaults()
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the commands cannot act on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.SelectionMode) {
	case "single", "multi", "multiple":
	default:
		return fmt.Errorf("invalid selection_mode %q: must be single or multi", c.SelectionMode)
	}
	if strings.TrimSpace(c.Remote) == "" {
		return errors.New("remote cannot be empty")
	}
	if strings.TrimSpace(c.DefaultBranch) == "" {
		return errors.New("default_branch cannot be empty")
	}
	return nil
}

// IsValidKey reports whether key is a known configuration key.
func IsValidKey(key string) bool {
	for _, k := range validKeys {
		if k == key {
			return true
		}
	}
	return false
}

func ValidKeys() []string {
	return append([]string(nil), validKeys...)
}

func SetConfigValue(key string, value interface{}) {
	viper.Set(key, value)
}

func SaveConfig() error {
	return viper.WriteConfig()
}

func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
