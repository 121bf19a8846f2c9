package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"meetscribe/internal/meeting"
)

const (
	whisperxCommand      = "whisperx"
	whisperxDefaultModel = "base"
)

// WhisperXConfig captures the runtime settings for local transcription.
type WhisperXConfig struct {
	Binary      string
	Model       string
	Language    string
	Device      string
	ComputeType string
	OutputDir   string
}

// WhisperX shells out to the whisperx CLI and parses its JSON output into
// segments.
type WhisperX struct {
	cfg           WhisperXConfig
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewWhisperX creates a WhisperX engine with the given configuration.
func NewWhisperX(cfg WhisperXConfig) *WhisperX {
	if cfg.Binary == "" {
		cfg.Binary = whisperxCommand
	}
	if cfg.Model == "" {
		cfg.Model = whisperxDefaultModel
	}
	return &WhisperX{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *WhisperX) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// Model returns the configured model name for logging.
func (e *WhisperX) Model() string {
	return e.cfg.Model
}

func (e *WhisperX) Transcribe(ctx context.Context, audioPath, meetingID string) (*meeting.Transcript, error) {
	if audioPath == "" {
		return nil, fmt.Errorf("whisperx: audio path required")
	}
	outputDir := e.cfg.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("whisperx: ensure output dir: %w", err)
	}

	args := e.buildArgs(audioPath, outputDir)
	if err := e.run(ctx, e.cfg.Binary, args...); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	segments, err := loadWhisperXSegments(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	transcript := &meeting.Transcript{
		Info:      meeting.Info{MeetingID: meetingID},
		AudioPath: audioPath,
		Segments:  segments,
		Metadata: map[string]any{
			"converter": "whisperx",
			"model":     e.cfg.Model,
		},
	}
	transcript.Text = transcript.FullText()
	return transcript, nil
}

func (e *WhisperX) buildArgs(audioPath, outputDir string) []string {
	args := []string{
		audioPath,
		"--model", e.cfg.Model,
		"--output_dir", outputDir,
		"--output_format", "json",
	}
	if e.cfg.Language != "" {
		args = append(args, "--language", e.cfg.Language)
	}
	if e.cfg.Device != "" {
		args = append(args, "--device", e.cfg.Device)
	}
	if e.cfg.ComputeType != "" {
		args = append(args, "--compute_type", e.cfg.ComputeType)
	}
	return args
}

func (e *WhisperX) run(ctx context.Context, name string, args ...string) error {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

type whisperXSegment struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

type whisperXPayload struct {
	Segments []whisperXSegment `json:"segments"`
	Language string            `json:"language"`
}

func loadWhisperXSegments(jsonPath string) ([]meeting.Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse output json: %w", err)
	}
	segments := make([]meeting.Segment, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, meeting.Segment{
			Start:    seg.Start,
			End:      seg.End,
			Text:     text,
			Speaker:  seg.Speaker,
			Language: payload.Language,
		})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("output %s contains no segments", jsonPath)
	}
	return segments, nil
}
