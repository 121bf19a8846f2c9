package meeting

import (
	"strings"
	"time"
)

// AudioInfo carries technical metadata about a recorded audio artifact.
type AudioInfo struct {
	Duration     float64 `json:"duration"`
	SampleRate   int     `json:"samplerate"`
	Codec        string  `json:"codec"`
	Channels     int     `json:"channels"`
	LUFS         float64 `json:"lufs,omitempty"`
	Peak         float64 `json:"peak,omitempty"`
	NoiseLevel   float64 `json:"noise_level,omitempty"`
	SilenceRatio float64 `json:"silence_ratio,omitempty"`
	Bitrate      int     `json:"bitrate,omitempty"`
}

// Info describes the meeting a recording belongs to.
type Info struct {
	MeetingID    string    `json:"meeting_id"`
	SourceType   string    `json:"source_type"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time,omitzero"`
	Participants []string  `json:"participants,omitempty"`
	ChannelID    string    `json:"channel_id,omitempty"`
	ChannelName  string    `json:"channel_name,omitempty"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
}

// Segment is one diarized span of transcribed speech.
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Language   string  `json:"language,omitempty"`
}

// Transcript is the unified transcript object that flows from the CONVERT
// stage into the LLM stage.
type Transcript struct {
	Info      Info           `json:"meeting_info"`
	Text      string         `json:"text,omitempty"`
	AudioPath string         `json:"audio_path,omitempty"`
	Segments  []Segment      `json:"segments,omitempty"`
	Audio     *AudioInfo     `json:"audio_info,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// FullText returns the complete transcript text, preferring the flat text
// field and falling back to joining segments.
func (t *Transcript) FullText() string {
	if strings.TrimSpace(t.Text) != "" {
		return t.Text
	}
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, "\n")
}

// Decision is a decision recorded during the meeting.
type Decision struct {
	Description string `json:"description"`
	Responsible string `json:"responsible,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// ActionItem is a follow-up task assigned during the meeting.
type ActionItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// Minutes is the structured minutes document produced by the LLM stage and
// consumed by every output renderer.
type Minutes struct {
	MeetingID    string         `json:"meeting_id"`
	Summary      string         `json:"summary"`
	Decisions    []Decision     `json:"decisions,omitempty"`
	ActionItems  []ActionItem   `json:"action_items,omitempty"`
	KeyPoints    []string       `json:"key_points,omitempty"`
	Participants []string       `json:"participants,omitempty"`
	URL          string         `json:"url,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
