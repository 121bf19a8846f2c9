package convert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPassthroughPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("  We agreed to ship on Friday.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	transcript, err := NewPassthrough().Transcribe(context.Background(), path, "m1")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if transcript.Text != "We agreed to ship on Friday." {
		t.Errorf("text = %q", transcript.Text)
	}
	if transcript.Info.MeetingID != "m1" {
		t.Errorf("meeting id = %q", transcript.Info.MeetingID)
	}
}

func TestPassthroughJSONDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	doc := `{"meeting_info":{"meeting_id":"existing"},"segments":[{"start":0,"end":2,"text":"hello"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	transcript, err := NewPassthrough().Transcribe(context.Background(), path, "fallback")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if transcript.Info.MeetingID != "existing" {
		t.Errorf("meeting id = %q, want document value kept", transcript.Info.MeetingID)
	}
	if transcript.FullText() != "hello" {
		t.Errorf("full text = %q", transcript.FullText())
	}
}

func TestPassthroughEmptyText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPassthrough().Transcribe(context.Background(), path, "m1"); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestWhisperXTranscribe(t *testing.T) {
	workDir := t.TempDir()
	audio := filepath.Join(workDir, "standup.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := NewWhisperX(WhisperXConfig{Model: "small", Language: "en"})
	var gotArgs []string
	engine.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		payload := `{"language":"en","segments":[
			{"start":0,"end":3.5,"text":" Good morning everyone. ","speaker":"SPEAKER_00"},
			{"start":3.5,"end":5,"text":"Status updates?","speaker":"SPEAKER_01"},
			{"start":5,"end":5.1,"text":"   "}
		]}`
		return os.WriteFile(filepath.Join(workDir, "standup.json"), []byte(payload), 0o644)
	})

	transcript, err := engine.Transcribe(context.Background(), audio, "m1")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(transcript.Segments) != 2 {
		t.Fatalf("segments = %d, want 2 (blank dropped)", len(transcript.Segments))
	}
	if transcript.Segments[0].Speaker != "SPEAKER_00" {
		t.Errorf("speaker = %q", transcript.Segments[0].Speaker)
	}
	if transcript.Segments[0].Language != "en" {
		t.Errorf("language = %q", transcript.Segments[0].Language)
	}
	if !strings.Contains(transcript.Text, "Good morning everyone.") {
		t.Errorf("text = %q", transcript.Text)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.HasPrefix(joined, "whisperx "+audio) {
		t.Errorf("command = %q", joined)
	}
	if !strings.Contains(joined, "--model small") || !strings.Contains(joined, "--language en") {
		t.Errorf("args = %q", joined)
	}
}

func TestWhisperXCommandFailure(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	engine := NewWhisperX(WhisperXConfig{})
	engine.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return context.DeadlineExceeded
	})
	if _, err := engine.Transcribe(context.Background(), audio, "m1"); err == nil {
		t.Fatal("expected command failure to surface")
	}
}

func TestWhisperXMissingOutput(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	engine := NewWhisperX(WhisperXConfig{})
	engine.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return nil
	})
	if _, err := engine.Transcribe(context.Background(), audio, "m1"); err == nil {
		t.Fatal("expected error when output json is missing")
	}
}

func deepgramFixture() string {
	return `{"results":{"channels":[{"alternatives":[{
		"transcript":"Good morning everyone. Status updates?",
		"confidence":0.98,
		"words":[
			{"word":"Good","start":0,"end":0.4,"confidence":0.99,"speaker":0},
			{"word":"morning","start":0.4,"end":0.8,"confidence":0.99,"speaker":0},
			{"word":"everyone.","start":0.8,"end":1.2,"confidence":0.97,"speaker":0},
			{"word":"Status","start":2,"end":2.4,"confidence":0.98,"speaker":1},
			{"word":"updates?","start":2.4,"end":2.9,"confidence":0.96,"speaker":1}
		]}]}]}}`
}

func TestDeepgramTranscribe(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(deepgramFixture())); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	audio := filepath.Join(t.TempDir(), "call.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := NewDeepgram(DeepgramConfig{
		APIKey:  "dg-key",
		BaseURL: server.URL,
		Diarize: true,
	}, WithDeepgramHTTPClient(server.Client()))

	transcript, err := engine.Transcribe(context.Background(), audio, "m1")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if gotAuth != "Token dg-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if !strings.Contains(gotQuery, "diarize=true") || !strings.Contains(gotQuery, "model=nova-2") {
		t.Errorf("query = %q", gotQuery)
	}
	if transcript.Text != "Good morning everyone. Status updates?" {
		t.Errorf("text = %q", transcript.Text)
	}
	if len(transcript.Segments) != 2 {
		t.Fatalf("segments = %d, want 2 speaker spans", len(transcript.Segments))
	}
	if transcript.Segments[0].Speaker != "SPEAKER_00" || transcript.Segments[1].Speaker != "SPEAKER_01" {
		t.Errorf("speakers = %q, %q", transcript.Segments[0].Speaker, transcript.Segments[1].Speaker)
	}
	if transcript.Segments[1].Text != "Status updates?" {
		t.Errorf("segment text = %q", transcript.Segments[1].Text)
	}
}

func TestDeepgramHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"err_msg":"invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	audio := filepath.Join(t.TempDir(), "call.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := NewDeepgram(DeepgramConfig{APIKey: "bad", BaseURL: server.URL},
		WithDeepgramHTTPClient(server.Client()))
	_, err := engine.Transcribe(context.Background(), audio, "m1")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v", err)
	}
}

func TestDeepgramRequiresAPIKey(t *testing.T) {
	engine := NewDeepgram(DeepgramConfig{})
	if _, err := engine.Transcribe(context.Background(), "ignored.wav", "m1"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestDeepgramEmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{"results": map[string]any{"channels": []any{
			map[string]any{"alternatives": []any{map[string]any{"transcript": "  "}}},
		}}}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	audio := filepath.Join(t.TempDir(), "call.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := NewDeepgram(DeepgramConfig{APIKey: "dg", BaseURL: server.URL},
		WithDeepgramHTTPClient(server.Client()))
	if _, err := engine.Transcribe(context.Background(), audio, "m1"); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}
