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
	"github.com/roomwaves/roomwaves/internal/panels"
)

// appConfig is the CLI runtime configuration.
type appConfig struct {
	APIURL         string        `mapstructure:"api-url"`
	APITimeout     time.Duration `mapstructure:"api-timeout"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFormat      string        `mapstructure:"log-format"`
	LogFile        string        `mapstructure:"log-file"`
	FrequencyBands int           `mapstructure:"frequency-bands"`
	SurfaceBands   int           `mapstructure:"surface-bands"`
	ParameterBands int           `mapstructure:"parameter-bands"`
	ReplayAddr     string        `mapstructure:"replay-addr"`
	FixturesDir    string        `mapstructure:"fixtures-dir"`
	ConfigPath     string        `mapstructure:"-"` // not from config file
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api-url", model.DefaultAPIURL)
	v.SetDefault("api-timeout", model.DefaultAPITimeout)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "console")
	v.SetDefault("log-file", "")
	v.SetDefault("frequency-bands", model.DefaultFrequencyBands)
	v.SetDefault("surface-bands", model.DefaultSurfaceBands)
	v.SetDefault("parameter-bands", model.DefaultParameterBands)
	v.SetDefault("replay-addr", model.DefaultReplayAddr)
	v.SetDefault("fixtures-dir", "~/.local/share/roomwaves/fixtures")
}

// loadConfig reads configPath (or the default location) into v. Flags bound
// to v before the call take precedence over file and env values.
func loadConfig(v *viper.Viper, configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v.SetEnvPrefix("ROOMWAVES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "roomwaves", "config.yml"))
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
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := panels.ValidateBands(panels.BandOptions, cfg.FrequencyBands); err != nil {
		return cfg, fmt.Errorf("invalid frequency-bands: %w", err)
	}
	if err := panels.ValidateBands(panels.BandOptions, cfg.SurfaceBands); err != nil {
		return cfg, fmt.Errorf("invalid surface-bands: %w", err)
	}
	if err := panels.ValidateBands(panels.BandModeOptions, cfg.ParameterBands); err != nil {
		return cfg, fmt.Errorf("invalid parameter-bands: %w", err)
	}

	// Expand ~ in fixtures-dir
	if strings.HasPrefix(cfg.FixturesDir, "~/") {
		cfg.FixturesDir = filepath.Join(home, cfg.FixturesDir[2:])
	}

	return cfg, nil
}
