package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetscribe/internal/meeting"
)

const minutesSystemPrompt = `You are a meeting secretary. Produce meeting minutes from the transcript you are given.
Respond with JSON only, matching this shape exactly:
{
  "summary": "two to four sentence summary of the meeting",
  "key_points": ["..."],
  "participants": ["..."],
  "decisions": [{"description": "...", "responsible": "...", "deadline": "..."}],
  "action_items": [{"description": "...", "assignee": "...", "deadline": "...", "priority": "low|medium|high"}]
}
Omit responsible, deadline, assignee, or priority when the transcript does not state them. Never invent participants or deadlines.`

// Engine names accepted by the configuration; each maps to a default model
// slug on the OpenAI-compatible endpoint.
var engineModels = map[string]string{
	"chatgpt": "openai/gpt-4o-mini",
	"claude":  "anthropic/claude-3.5-sonnet",
	"gemini":  "google/gemini-flash-1.5",
}

// Engines lists the supported engine names.
func Engines() []string {
	return []string{"chatgpt", "claude", "gemini"}
}

// ModelForEngine resolves an engine name to a model slug, preferring an
// explicit override.
func ModelForEngine(engine, override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override), nil
	}
	model, ok := engineModels[strings.ToLower(strings.TrimSpace(engine))]
	if !ok {
		return "", fmt.Errorf("unknown llm engine %q (supported: %s)", engine, strings.Join(Engines(), ", "))
	}
	return model, nil
}

// Generator produces structured minutes from transcripts.
type Generator struct {
	client *Client
	engine string
}

// NewGenerator builds a minutes generator for the named engine. The model is
// resolved from the engine name unless cfg.Model overrides it.
func NewGenerator(engine string, cfg Config, opts ...Option) (*Generator, error) {
	model, err := ModelForEngine(engine, cfg.Model)
	if err != nil {
		return nil, err
	}
	cfg.Model = model
	return &Generator{
		client: NewClient(cfg, opts...),
		engine: strings.ToLower(strings.TrimSpace(engine)),
	}, nil
}

// Engine returns the configured engine name.
func (g *Generator) Engine() string {
	return g.engine
}

// HealthCheck verifies the endpoint, key, and model are usable.
func (g *Generator) HealthCheck(ctx context.Context) error {
	return g.client.HealthCheck(ctx)
}

type minutesPayload struct {
	Summary      string               `json:"summary"`
	KeyPoints    []string             `json:"key_points"`
	Participants []string             `json:"participants"`
	Decisions    []meeting.Decision   `json:"decisions"`
	ActionItems  []meeting.ActionItem `json:"action_items"`
}

// GenerateMinutes prompts the model with the transcript and decodes the
// returned minutes document.
func (g *Generator) GenerateMinutes(ctx context.Context, transcript *meeting.Transcript) (*meeting.Minutes, error) {
	if transcript == nil {
		return nil, errors.New("generate minutes: transcript required")
	}
	text := strings.TrimSpace(transcript.FullText())
	if text == "" {
		return nil, errors.New("generate minutes: transcript is empty")
	}

	content, err := g.client.CompleteJSON(ctx, minutesSystemPrompt, buildUserPrompt(transcript, text))
	if err != nil {
		return nil, fmt.Errorf("generate minutes: %w", err)
	}

	var payload minutesPayload
	if err := DecodeLLMJSON(content, &payload); err != nil {
		return nil, fmt.Errorf("generate minutes: parse payload: %w", err)
	}
	if strings.TrimSpace(payload.Summary) == "" {
		return nil, errors.New("generate minutes: model returned no summary")
	}

	participants := payload.Participants
	if len(participants) == 0 {
		participants = transcript.Info.Participants
	}

	return &meeting.Minutes{
		MeetingID:    transcript.Info.MeetingID,
		Summary:      strings.TrimSpace(payload.Summary),
		KeyPoints:    payload.KeyPoints,
		Participants: participants,
		Decisions:    payload.Decisions,
		ActionItems:  payload.ActionItems,
		Metadata: map[string]any{
			"llm_engine": g.engine,
			"llm_model":  g.client.Model(),
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func buildUserPrompt(transcript *meeting.Transcript, text string) string {
	var b strings.Builder
	if title := meeting.DisplayTitle(transcript.Info); title != "Untitled Meeting" {
		fmt.Fprintf(&b, "Meeting: %s\n", title)
	}
	if !transcript.Info.StartTime.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", transcript.Info.StartTime.Format("2006-01-02 15:04"))
	}
	if len(transcript.Info.Participants) > 0 {
		fmt.Fprintf(&b, "Known participants: %s\n", strings.Join(transcript.Info.Participants, ", "))
	}
	b.WriteString("\nTranscript:\n")
	b.WriteString(text)
	return b.String()
}
