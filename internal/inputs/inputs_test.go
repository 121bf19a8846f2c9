package inputs

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRecordStagesAudio(t *testing.T) {
	srcDir := t.TempDir()
	workDir := t.TempDir()
	src := filepath.Join(srcDir, "standup.wav")
	if err := os.WriteFile(src, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := NewFile(src, workDir)
	staged, err := provider.Record(context.Background(), "2026-08-24T19-00_file_standup")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	want := filepath.Join(workDir, "2026-08-24T19-00_file_standup", "standup.wav")
	if staged != want {
		t.Fatalf("staged = %q, want %q", staged, want)
	}
	content, err := os.ReadFile(staged)
	if err != nil {
		t.Fatalf("read staged: %v", err)
	}
	if string(content) != "RIFFdata" {
		t.Errorf("staged content = %q", content)
	}
}

func TestFileRecordMissingSource(t *testing.T) {
	provider := NewFile(filepath.Join(t.TempDir(), "absent.wav"), t.TempDir())
	if _, err := provider.Record(context.Background(), "m1"); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}

func TestFileRecordEmptyPath(t *testing.T) {
	provider := NewFile("", t.TempDir())
	if _, err := provider.Record(context.Background(), "m1"); err == nil {
		t.Fatal("expected error for empty audio_path")
	}
}

func TestFileRecordWithoutWorkingDirUsesSourceInPlace(t *testing.T) {
	src := filepath.Join(t.TempDir(), "call.mp3")
	if err := os.WriteFile(src, []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}
	provider := NewFile(src, "")
	staged, err := provider.Record(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if staged != src {
		t.Fatalf("staged = %q, want source path", staged)
	}
}

func writeArchive(t *testing.T, members map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recording.zip")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	writer := zip.NewWriter(file)
	for name, data := range members {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestZipRecordExtractsAudioMember(t *testing.T) {
	archive := writeArchive(t, map[string][]byte{
		"README.txt":          []byte("notes"),
		"session/capture.ogg": []byte("oggdata"),
	})
	workDir := t.TempDir()

	provider := NewZip(archive, workDir)
	staged, err := provider.Record(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if filepath.Base(staged) != "capture.ogg" {
		t.Fatalf("staged = %q, want capture.ogg", staged)
	}
	content, err := os.ReadFile(staged)
	if err != nil {
		t.Fatalf("read staged: %v", err)
	}
	if string(content) != "oggdata" {
		t.Errorf("staged content = %q", content)
	}
}

func TestZipRecordNoAudioMember(t *testing.T) {
	archive := writeArchive(t, map[string][]byte{"README.txt": []byte("notes")})
	provider := NewZip(archive, t.TempDir())
	if _, err := provider.Record(context.Background(), "m1"); err == nil {
		t.Fatal("expected error when archive has no audio member")
	}
}

func TestZipRecordMissingArchive(t *testing.T) {
	provider := NewZip(filepath.Join(t.TempDir(), "absent.zip"), t.TempDir())
	if _, err := provider.Record(context.Background(), "m1"); err == nil {
		t.Fatal("expected error for missing archive")
	}
}
