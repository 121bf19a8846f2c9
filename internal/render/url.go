package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"meetscribe/internal/outputs"
)

// URL surfaces the notebook URL produced by the minutes generator. It writes
// a small metadata file alongside the other artifacts and returns the URL
// when one exists, else the metadata path.
//
// Params: output_dir, save_metadata (default true).
type URL struct {
	defaultDir string
}

// NewURL builds a URL renderer rooted at defaultDir.
func NewURL(defaultDir string) *URL {
	return &URL{defaultDir: defaultDir}
}

func (r *URL) Render(ctx context.Context, req outputs.Request) (string, error) {
	dir := stringParam(req.Params, "output_dir", r.defaultDir)

	target := filepath.Join(dir, req.MeetingID, "meeting_info.json")
	if boolParam(req.Params, "save_metadata", true) {
		info := map[string]any{
			"meeting_id":   req.MeetingID,
			"summary":      req.Minutes.Summary,
			"url":          req.Minutes.URL,
			"generated_at": req.Minutes.GeneratedAt,
		}
		encoded, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return "", fmt.Errorf("url render: encode info: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", fmt.Errorf("url render: create output directory: %w", err)
		}
		if err := os.WriteFile(target, append(encoded, '\n'), 0o644); err != nil {
			return "", fmt.Errorf("url render: write info: %w", err)
		}
	}

	if req.Minutes.URL != "" {
		return req.Minutes.URL, nil
	}
	return target, nil
}
