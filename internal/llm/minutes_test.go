package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetscribe/internal/meeting"
)

func minutesFixture() string {
	return chatResponse(`{
		"summary": "The team agreed to ship the release on Friday.",
		"key_points": ["Release scope frozen", "QA starts Monday"],
		"participants": ["ana", "bo"],
		"decisions": [{"description": "Ship on Friday", "responsible": "ana"}],
		"action_items": [{"description": "Update changelog", "assignee": "bo", "priority": "high"}]
	}`)
}

func sampleTranscript() *meeting.Transcript {
	return &meeting.Transcript{
		Info: meeting.Info{
			MeetingID: "2026-08-24T19-00_file_standup",
			StartTime: time.Date(2026, 8, 24, 19, 0, 0, 0, time.UTC),
		},
		Text: "Ana: let's ship Friday. Bo: I'll update the changelog.",
	}
}

func TestGenerateMinutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(minutesFixture())); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	generator, err := NewGenerator("claude", Config{APIKey: "key", BaseURL: server.URL},
		WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	minutes, err := generator.GenerateMinutes(context.Background(), sampleTranscript())
	if err != nil {
		t.Fatalf("GenerateMinutes() error = %v", err)
	}
	if minutes.MeetingID != "2026-08-24T19-00_file_standup" {
		t.Errorf("meeting id = %q", minutes.MeetingID)
	}
	if minutes.Summary != "The team agreed to ship the release on Friday." {
		t.Errorf("summary = %q", minutes.Summary)
	}
	if len(minutes.Decisions) != 1 || minutes.Decisions[0].Responsible != "ana" {
		t.Errorf("decisions = %+v", minutes.Decisions)
	}
	if minutes.Metadata["llm_engine"] != "claude" {
		t.Errorf("llm_engine = %v", minutes.Metadata["llm_engine"])
	}
	if minutes.Metadata["llm_model"] != "anthropic/claude-3.5-sonnet" {
		t.Errorf("llm_model = %v", minutes.Metadata["llm_model"])
	}
	if minutes.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestGenerateMinutesEmptyTranscript(t *testing.T) {
	generator, err := NewGenerator("chatgpt", Config{APIKey: "key"})
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := generator.GenerateMinutes(context.Background(), &meeting.Transcript{}); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestGenerateMinutesMissingSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(chatResponse(`{"key_points":["a"]}`))); err != nil {
			t.Error(err)
		}
	}))
	defer server.Close()

	generator, err := NewGenerator("gemini", Config{APIKey: "key", BaseURL: server.URL},
		WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := generator.GenerateMinutes(context.Background(), sampleTranscript()); err == nil {
		t.Fatal("expected error when summary is missing")
	}
}

func TestModelForEngine(t *testing.T) {
	tests := []struct {
		engine   string
		override string
		want     string
		wantErr  bool
	}{
		{engine: "chatgpt", want: "openai/gpt-4o-mini"},
		{engine: "Claude", want: "anthropic/claude-3.5-sonnet"},
		{engine: "gemini", want: "google/gemini-flash-1.5"},
		{engine: "chatgpt", override: "openai/gpt-4.1", want: "openai/gpt-4.1"},
		{engine: "llama", wantErr: true},
		{engine: "", wantErr: true},
	}
	for _, tc := range tests {
		model, err := ModelForEngine(tc.engine, tc.override)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ModelForEngine(%q) expected error", tc.engine)
			}
			continue
		}
		if err != nil {
			t.Errorf("ModelForEngine(%q) error = %v", tc.engine, err)
			continue
		}
		if model != tc.want {
			t.Errorf("ModelForEngine(%q) = %q, want %q", tc.engine, model, tc.want)
		}
	}
}

func TestNewGeneratorUnknownEngine(t *testing.T) {
	if _, err := NewGenerator("bard", Config{APIKey: "key"}); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}
