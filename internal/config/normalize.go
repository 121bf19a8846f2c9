package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeInput(); err != nil {
		return err
	}
	c.normalizeConvert()
	c.normalizeLLM()
	c.normalizeLogging()
	c.Outputs.ExecutionMode = strings.ToLower(strings.TrimSpace(c.Outputs.ExecutionMode))
	if c.Outputs.ExecutionMode == "" {
		c.Outputs.ExecutionMode = defaultOutputExecMode
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkingDir, err = expandPath(c.Paths.WorkingDir); err != nil {
		return fmt.Errorf("paths.working_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeInput() error {
	c.Input.Type = strings.ToLower(strings.TrimSpace(c.Input.Type))
	if c.Input.Type == "" {
		c.Input.Type = defaultInputType
	}
	var err error
	if c.Input.AudioPath != "" {
		if c.Input.AudioPath, err = expandPath(c.Input.AudioPath); err != nil {
			return fmt.Errorf("input.audio_path: %w", err)
		}
	}
	if c.Input.ZipPath != "" {
		if c.Input.ZipPath, err = expandPath(c.Input.ZipPath); err != nil {
			return fmt.Errorf("input.zip_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeConvert() {
	c.Convert.Engine = strings.ToLower(strings.TrimSpace(c.Convert.Engine))
	if c.Convert.Engine == "" {
		c.Convert.Engine = defaultConvertEngine
	}
	c.Convert.Language = strings.TrimSpace(c.Convert.Language)
	if c.Convert.WhisperX.Model == "" {
		c.Convert.WhisperX.Model = defaultWhisperXModel
	}
	if c.Convert.Deepgram.APIKey == "" {
		if value, ok := os.LookupEnv("DEEPGRAM_API_KEY"); ok {
			c.Convert.Deepgram.APIKey = value
		}
	}
	if c.Convert.Deepgram.Model == "" {
		c.Convert.Deepgram.Model = defaultDeepgramModel
	}
	if c.Convert.Deepgram.TimeoutSeconds <= 0 {
		c.Convert.Deepgram.TimeoutSeconds = defaultDeepgramTimeout
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.Engine = strings.ToLower(strings.TrimSpace(c.LLM.Engine))
	if c.LLM.Engine == "" {
		c.LLM.Engine = defaultLLMEngine
	}
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = value
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
