package config

import (
	"errors"
	"fmt"
	"strings"

	"meetscribe/internal/llm"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateOutputs(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInput() error {
	switch c.Input.Type {
	case "file":
		if strings.TrimSpace(c.Input.AudioPath) == "" {
			return errors.New("input.audio_path must be set when input.type is \"file\"")
		}
	case "zip":
		if strings.TrimSpace(c.Input.ZipPath) == "" {
			return errors.New("input.zip_path must be set when input.type is \"zip\"")
		}
	default:
		return fmt.Errorf("input.type must be \"file\" or \"zip\", got %q", c.Input.Type)
	}
	return nil
}

func (c *Config) validateConvert() error {
	switch c.Convert.Engine {
	case "passthrough", "whisperx":
	case "deepgram":
		if strings.TrimSpace(c.Convert.Deepgram.APIKey) == "" {
			return errors.New("convert.deepgram.api_key is required. Set DEEPGRAM_API_KEY env var or edit the config file")
		}
	default:
		return fmt.Errorf("convert.engine must be one of passthrough, whisperx, deepgram; got %q", c.Convert.Engine)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if _, err := llm.ModelForEngine(c.LLM.Engine, c.LLM.Model); err != nil {
		return fmt.Errorf("llm.engine: %w", err)
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/meetscribe/config.toml"
		}
		return fmt.Errorf("llm.api_key is required. Set OPENROUTER_API_KEY env var or edit %s (create with 'meetscribe config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateOutputs() error {
	if _, err := c.ExecutionMode(); err != nil {
		return fmt.Errorf("outputs.execution_mode: %w", err)
	}
	specs, err := c.OutputSpecs()
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return errors.New("outputs.targets must contain at least one enabled target")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
