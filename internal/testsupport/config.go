// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"meetscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories and a
// staged audio file per test. It applies any provided options on top.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	audio := filepath.Join(base, "recording.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Paths.WorkingDir = filepath.Join(base, "work")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Input.Type = "file"
	cfg.Input.AudioPath = audio
	cfg.Convert.Engine = "passthrough"
	cfg.LLM.Engine = "chatgpt"
	cfg.LLM.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithOutputTargets replaces the configured output targets.
func WithOutputTargets(targets ...config.OutputTarget) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Outputs.Targets = targets
	}
}

// WithExecutionMode overrides the run-level output execution mode.
func WithExecutionMode(mode string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Outputs.ExecutionMode = mode
	}
}
