package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"meetscribe/internal/config"
	"meetscribe/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildLogger builds the run logger per the config, teeing to a log file
// under the configured log directory.
func (c *commandContext) buildLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.NewFileTee(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}, filepath.Join(cfg.Paths.LogDir, "meetscribe.log"))
}
