package main

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/apiclient"
	"github.com/roomwaves/roomwaves/internal/logging"
)

type commandContext struct {
	v          *viper.Viper
	configPath string

	configOnce sync.Once
	config     appConfig
	logger     *zap.Logger
	configErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{v: viper.New(), logger: zap.NewNop()}
}

func (c *commandContext) ensureConfig() (appConfig, error) {
	c.configOnce.Do(func() {
		cfg, err := loadConfig(c.v, c.configPath)
		if err != nil {
			c.configErr = err
			return
		}
		out := []string{"stderr"}
		if cfg.LogFile != "" {
			out = []string{cfg.LogFile}
		}
		logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, OutputPaths: out})
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) newClient() (*apiclient.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	apiCfg := apiclient.DefaultConfig()
	apiCfg.BaseURL = cfg.APIURL
	apiCfg.Timeout = cfg.APITimeout
	apiCfg.UserAgent = "roomwaves/" + version
	client, err := apiclient.New(apiCfg, apiclient.WithLogger(c.logger.Named("api")))
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	return client, nil
}

func (c *commandContext) close() {
	_ = c.logger.Sync()
}
