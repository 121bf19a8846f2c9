package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meetscribe/internal/meeting"
	"meetscribe/internal/outputs"
)

const minutesSchemaVersion = "1.0"

// JSONFile writes structured minutes for machine consumption.
//
// Params: output_dir, filename (default minutes.json), include_metadata
// (default true).
type JSONFile struct {
	defaultDir string
}

// NewJSONFile builds a JSON renderer rooted at defaultDir.
func NewJSONFile(defaultDir string) *JSONFile {
	return &JSONFile{defaultDir: defaultDir}
}

type minutesDocument struct {
	SchemaVersion string               `json:"$schema_version"`
	MeetingID     string               `json:"meeting_id"`
	GeneratedAt   time.Time            `json:"generated_at"`
	Summary       string               `json:"summary"`
	KeyPoints     []string             `json:"key_points"`
	Participants  []string             `json:"participants"`
	Decisions     []meeting.Decision   `json:"decisions"`
	ActionItems   []meeting.ActionItem `json:"action_items"`
	URL           string               `json:"url,omitempty"`
	Metadata      map[string]any       `json:"metadata,omitempty"`
	Statistics    minutesStatistics    `json:"statistics"`
}

type minutesStatistics struct {
	TotalDecisions    int `json:"total_decisions"`
	TotalActionItems  int `json:"total_action_items"`
	TotalKeyPoints    int `json:"total_key_points"`
	TotalParticipants int `json:"total_participants"`
}

func (r *JSONFile) Render(ctx context.Context, req outputs.Request) (string, error) {
	dir := stringParam(req.Params, "output_dir", r.defaultDir)
	filename := stringParam(req.Params, "filename", "minutes.json")

	minutes := req.Minutes
	doc := minutesDocument{
		SchemaVersion: minutesSchemaVersion,
		MeetingID:     req.MeetingID,
		GeneratedAt:   minutes.GeneratedAt,
		Summary:       minutes.Summary,
		KeyPoints:     minutes.KeyPoints,
		Participants:  minutes.Participants,
		Decisions:     minutes.Decisions,
		ActionItems:   minutes.ActionItems,
		URL:           minutes.URL,
		Statistics: minutesStatistics{
			TotalDecisions:    len(minutes.Decisions),
			TotalActionItems:  len(minutes.ActionItems),
			TotalKeyPoints:    len(minutes.KeyPoints),
			TotalParticipants: len(minutes.Participants),
		},
	}
	if boolParam(req.Params, "include_metadata", true) {
		doc.Metadata = minutes.Metadata
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json render: encode minutes: %w", err)
	}

	target := filepath.Join(dir, req.MeetingID, filename)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("json render: create output directory: %w", err)
	}
	if err := os.WriteFile(target, append(encoded, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("json render: write file: %w", err)
	}
	return target, nil
}
