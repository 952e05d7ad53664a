// Package config loads gwp settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings used by the workspace flow.
type Config struct {
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	APIBase string `mapstructure:"api_base"`
}

const (
	DefaultModel      = "gpt-3.5-turbo"
	DefaultConfigName = ".gwp"
	EnvPrefix         = "GWP"
)

// Suggested models; any non-empty model name is accepted.
var suggestedModels = []string{
	"gpt-3.5-turbo",
	"gpt-4",
	"gpt-4o-mini",
}

// InitConfig loads configuration from cfgFile when given, otherwise searches
// the current directory first and the user home directory second for
// .gwp.yaml. A missing config file is not an error; generation simply falls
// back when no API key is available.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig persists the current viper state, creating the file in the user
// home directory when none exists yet.
func SaveConfig() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to find home directory: %w", err)
	}
	return viper.WriteConfigAs(filepath.Join(home, DefaultConfigName+".yaml"))
}

// IsValidModel accepts any non-empty model name.
func IsValidModel(model string) bool {
	return strings.TrimSpace(model) != ""
}

// GetSuggestedModels returns the suggested model list.
func GetSuggestedModels() []string {
	return suggestedModels
}
