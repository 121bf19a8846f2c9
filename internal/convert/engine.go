package convert

import (
	"context"

	"meetscribe/internal/meeting"
)

// Engine converts one staged audio artifact into a transcript.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, meetingID string) (*meeting.Transcript, error)
}
