package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meetscribe/internal/meeting"
)

// Passthrough handles inputs that are already transcripts: a plain-text file
// becomes the transcript text verbatim, a JSON file is decoded as a
// Transcript document.
type Passthrough struct{}

// NewPassthrough builds a passthrough engine.
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

func (e *Passthrough) Transcribe(ctx context.Context, audioPath, meetingID string) (*meeting.Transcript, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("passthrough: read transcript: %w", err)
	}

	switch strings.ToLower(filepath.Ext(audioPath)) {
	case ".json":
		var transcript meeting.Transcript
		if err := json.Unmarshal(data, &transcript); err != nil {
			return nil, fmt.Errorf("passthrough: decode transcript json: %w", err)
		}
		if transcript.Info.MeetingID == "" {
			transcript.Info.MeetingID = meetingID
		}
		return &transcript, nil
	default:
		text := strings.TrimSpace(string(data))
		if text == "" {
			return nil, fmt.Errorf("passthrough: transcript %s is empty", audioPath)
		}
		return &meeting.Transcript{
			Info:      meeting.Info{MeetingID: meetingID},
			Text:      text,
			AudioPath: audioPath,
			Metadata:  map[string]any{"converter": "passthrough"},
		}, nil
	}
}
