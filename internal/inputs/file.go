package inputs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"meetscribe/internal/fileutil"
)

// Provider stages a recording for one meeting and returns the staged audio
// path.
type Provider interface {
	Record(ctx context.Context, meetingID string) (string, error)
}

// File stages an existing audio file from disk.
type File struct {
	audioPath  string
	workingDir string
}

// NewFile builds a file provider for a pre-recorded audio file.
func NewFile(audioPath, workingDir string) *File {
	return &File{audioPath: audioPath, workingDir: workingDir}
}

func (p *File) Record(ctx context.Context, meetingID string) (string, error) {
	if p.audioPath == "" {
		return "", fmt.Errorf("file input: audio_path is required")
	}
	info, err := os.Stat(p.audioPath)
	if err != nil {
		return "", fmt.Errorf("file input: audio file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("file input: %s is a directory", p.audioPath)
	}
	staged, err := stageFile(p.audioPath, p.workingDir, meetingID)
	if err != nil {
		return "", fmt.Errorf("file input: %w", err)
	}
	return staged, nil
}

// stageFile copies src into <workingDir>/<meetingID>/ keeping the original
// file name. An empty workingDir means the source is used in place.
func stageFile(src, workingDir, meetingID string) (string, error) {
	if workingDir == "" {
		return src, nil
	}
	targetDir := filepath.Join(workingDir, meetingID)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}
	target := filepath.Join(targetDir, filepath.Base(src))
	if target == src {
		return src, nil
	}
	if err := fileutil.CopyVerified(src, target); err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}
	return target, nil
}
