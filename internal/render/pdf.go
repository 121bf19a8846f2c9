package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"meetscribe/internal/outputs"
)

// commandRunner abstracts exec so tests can fake the pandoc invocation.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// PDF converts the Markdown minutes to PDF through pandoc.
//
// Params: output_dir, filename (default minutes.pdf), pandoc_path,
// pdf_engine (default xelatex), include_metadata, include_toc.
type PDF struct {
	defaultDir string
	run        commandRunner
}

// NewPDF builds a pandoc-backed PDF renderer rooted at defaultDir.
func NewPDF(defaultDir string) *PDF {
	return &PDF{defaultDir: defaultDir, run: execRunner}
}

func (r *PDF) Render(ctx context.Context, req outputs.Request) (string, error) {
	dir := stringParam(req.Params, "output_dir", r.defaultDir)
	filename := stringParam(req.Params, "filename", "minutes.pdf")
	pandoc := stringParam(req.Params, "pandoc_path", "pandoc")
	engine := stringParam(req.Params, "pdf_engine", "xelatex")

	content := MarkdownContent(req.Minutes, req.MeetingID,
		boolParam(req.Params, "include_metadata", true),
		boolParam(req.Params, "include_toc", false),
	)

	targetDir := filepath.Join(dir, req.MeetingID)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("pdf render: create output directory: %w", err)
	}

	source, err := os.CreateTemp(targetDir, "minutes-*.md")
	if err != nil {
		return "", fmt.Errorf("pdf render: create temp markdown: %w", err)
	}
	sourcePath := source.Name()
	defer os.Remove(sourcePath)
	if _, err := source.WriteString(content); err != nil {
		source.Close()
		return "", fmt.Errorf("pdf render: write temp markdown: %w", err)
	}
	if err := source.Close(); err != nil {
		return "", fmt.Errorf("pdf render: close temp markdown: %w", err)
	}

	target := filepath.Join(targetDir, filename)
	args := []string{
		sourcePath,
		"--from", "markdown",
		"--output", target,
		"--pdf-engine", engine,
		"--variable", "geometry:margin=2.5cm",
	}
	if output, err := r.run(ctx, pandoc, args...); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return "", fmt.Errorf("pdf render: pandoc failed: %w: %s", err, detail)
		}
		return "", fmt.Errorf("pdf render: pandoc failed: %w", err)
	}
	return target, nil
}
