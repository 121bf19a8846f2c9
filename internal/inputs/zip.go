package inputs

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
	".opus": {},
	".aac":  {},
}

// Zip extracts the first audio member of a recording archive.
type Zip struct {
	zipPath    string
	workingDir string
}

// NewZip builds a zip provider for a recording archive.
func NewZip(zipPath, workingDir string) *Zip {
	return &Zip{zipPath: zipPath, workingDir: workingDir}
}

func (p *Zip) Record(ctx context.Context, meetingID string) (string, error) {
	if p.zipPath == "" {
		return "", fmt.Errorf("zip input: zip_path is required")
	}
	reader, err := zip.OpenReader(p.zipPath)
	if err != nil {
		return "", fmt.Errorf("zip input: open archive: %w", err)
	}
	defer reader.Close()

	member := firstAudioMember(reader.File)
	if member == nil {
		return "", fmt.Errorf("zip input: no audio file found in %s", p.zipPath)
	}

	targetDir := filepath.Join(p.workingDir, meetingID)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("zip input: create staging directory: %w", err)
	}
	target := filepath.Join(targetDir, filepath.Base(member.Name))
	if err := extractMember(member, target); err != nil {
		return "", fmt.Errorf("zip input: %w", err)
	}
	return target, nil
}

func firstAudioMember(files []*zip.File) *zip.File {
	for _, file := range files {
		if file.FileInfo().IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name))
		if _, ok := audioExtensions[ext]; ok {
			return file
		}
	}
	return nil
}

func extractMember(member *zip.File, target string) error {
	in, err := member.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", member.Name, err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", member.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", target, err)
	}
	return nil
}
