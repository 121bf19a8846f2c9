package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"meetscribe/internal/outputs"
)

func writeCLIConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	audioPath := filepath.Join(base, "standup.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF fake audio"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}

	configPath := filepath.Join(base, "meetscribe.toml")
	content := fmt.Sprintf(`[paths]
working_dir = %q
output_dir = %q
log_dir = %q

[input]
type = "file"
audio_path = %q

[convert]
engine = "passthrough"

[llm]
engine = "chatgpt"
api_key = "test-key"

[[outputs.targets]]
format = "markdown"
`,
		filepath.Join(base, "work"),
		filepath.Join(base, "out"),
		filepath.Join(base, "logs"),
		audioPath,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesExisting(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}

	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestTestNotifyWithoutTopic(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, err := runCLI(t, "--config", configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "Notifications not configured")
}

func TestHistoryCommandEmpty(t *testing.T) {
	configPath := writeCLIConfig(t)

	out, err := runCLI(t, "--config", configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}

func TestReportTableRows(t *testing.T) {
	report := &outputs.Report{
		Total:      3,
		Successful: []outputs.Success{{Format: "markdown", Artifact: "/tmp/minutes.md"}},
		Failed:     []outputs.Failure{{Format: "webhook", Err: fmt.Errorf("post failed")}},
		Skipped:    []outputs.Skip{{Format: "pdf", Reason: "dependency_not_met"}},
	}

	rendered := reportTable(report)
	for _, want := range []string{"markdown", "success", "/tmp/minutes.md", "webhook", "post failed", "pdf", "dependency_not_met"} {
		requireContains(t, rendered, want)
	}
}
