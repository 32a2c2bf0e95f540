package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roomwaves/roomwaves/internal/model"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	APIURL             string        `mapstructure:"api-url"`
	APITimeout         time.Duration `mapstructure:"api-timeout"`
	Skin               string        `mapstructure:"skin"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	FrequencyBands     int           `mapstructure:"frequency-bands"`
	SurfaceBands       int           `mapstructure:"surface-bands"`
	ParameterBands     int           `mapstructure:"parameter-bands"`
	LogLevel           string        `mapstructure:"log-level"`
	LogFormat          string        `mapstructure:"log-format"`
	LogFile            string        `mapstructure:"log-file"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "roomwaves"), nil
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	dir, err := configDir()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetEnvPrefix("ROOMWAVES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-url", model.DefaultAPIURL)
	v.SetDefault("api-timeout", model.DefaultAPITimeout)
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("frequency-bands", model.DefaultFrequencyBands)
	v.SetDefault("surface-bands", model.DefaultSurfaceBands)
	v.SetDefault("parameter-bands", model.DefaultParameterBands)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
	v.SetDefault("log-file", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(dir, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
