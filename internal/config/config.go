package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"meetscribe/internal/outputs"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkingDir string `toml:"working_dir"`
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
}

// Input selects and configures the recording provider.
type Input struct {
	Type      string `toml:"type"`
	AudioPath string `toml:"audio_path"`
	ZipPath   string `toml:"zip_path"`
}

// WhisperX contains settings for local transcription.
type WhisperX struct {
	Binary      string `toml:"binary"`
	Model       string `toml:"model"`
	Device      string `toml:"device"`
	ComputeType string `toml:"compute_type"`
}

// Deepgram contains settings for the Deepgram transcription API.
type Deepgram struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Diarize        bool   `toml:"diarize"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Convert selects and configures the transcript converter.
type Convert struct {
	Engine   string   `toml:"engine"`
	Language string   `toml:"language"`
	WhisperX WhisperX `toml:"whisperx"`
	Deepgram Deepgram `toml:"deepgram"`
}

// LLM contains the minutes-generation settings.
type LLM struct {
	Engine         string `toml:"engine"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// OutputTarget is one raw output entry from the config file.
type OutputTarget struct {
	Format         string         `toml:"format"`
	Enabled        *bool          `toml:"enabled"`
	OnError        string         `toml:"on_error"`
	ExecutionGroup int            `toml:"execution_group"`
	DependsOn      []string       `toml:"depends_on"`
	WaitForGroup   bool           `toml:"wait_for_group"`
	Params         map[string]any `toml:"params"`
}

// Outputs contains the output-stage configuration.
type Outputs struct {
	ExecutionMode string         `toml:"execution_mode"`
	Targets       []OutputTarget `toml:"targets"`
}

// Pipeline contains run-level behavior switches.
type Pipeline struct {
	CleanupAudio bool `toml:"cleanup_audio"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for meetscribe.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Input         Input         `toml:"input"`
	Convert       Convert       `toml:"convert"`
	LLM           LLM           `toml:"llm"`
	Outputs       Outputs       `toml:"outputs"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/meetscribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("meetscribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkingDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryDBPath returns the run-history database location under the log dir.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// OutputSpecs converts the configured targets into validated output specs.
func (c *Config) OutputSpecs() ([]outputs.Spec, error) {
	raw := make([]outputs.SpecConfig, 0, len(c.Outputs.Targets))
	for _, target := range c.Outputs.Targets {
		raw = append(raw, outputs.SpecConfig{
			Format:       target.Format,
			Params:       target.Params,
			Enabled:      target.Enabled,
			OnError:      target.OnError,
			Group:        target.ExecutionGroup,
			DependsOn:    target.DependsOn,
			WaitForGroup: target.WaitForGroup,
		})
	}
	return outputs.BuildSpecs(raw)
}

// ExecutionMode returns the validated run-level output execution mode.
func (c *Config) ExecutionMode() (outputs.Mode, error) {
	return outputs.ParseMode(c.Outputs.ExecutionMode)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
