package main

import (
	"log/slog"

	"shelve/internal/config"
	"shelve/internal/logging"
)

// commandContext shares lazily-loaded configuration and logging between
// subcommands so each command body stays focused on its operation.
type commandContext struct {
	configFlag *string

	cfg          *config.Config
	cfgPath      string
	configExists bool
	logger       *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolvedPath, exists, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = resolvedPath
	c.configExists = exists
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// configPath reports the resolved configuration file location. It is only
// meaningful after ensureConfig has succeeded.
func (c *commandContext) configPath() string {
	return c.cfgPath
}
