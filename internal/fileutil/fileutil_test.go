package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "meeting.wav")
	dst := filepath.Join(dir, "staged.wav")

	content := []byte("RIFF fake recording bytes")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()

	if err := CopyVerified(filepath.Join(dir, "nonexistent.wav"), filepath.Join(dir, "staged.wav")); err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, err := os.Stat(filepath.Join(dir, "staged.wav")); !os.IsNotExist(err) {
		t.Fatal("expected no destination file after failed copy")
	}
}
