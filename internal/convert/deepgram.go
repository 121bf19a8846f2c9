package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"meetscribe/internal/meeting"
)

const (
	deepgramDefaultBaseURL = "https://api.deepgram.com/v1/listen"
	deepgramDefaultModel   = "nova-2"
	deepgramDefaultTimeout = 120 * time.Second
)

// DeepgramConfig captures the runtime settings for the Deepgram API.
type DeepgramConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Language       string
	Diarize        bool
	TimeoutSeconds int
}

// Deepgram posts staged audio to the Deepgram listen endpoint and maps the
// response into transcript segments.
type Deepgram struct {
	cfg        DeepgramConfig
	httpClient *http.Client
}

// DeepgramOption customizes the engine.
type DeepgramOption func(*Deepgram)

// WithDeepgramHTTPClient overrides the default HTTP client.
func WithDeepgramHTTPClient(client *http.Client) DeepgramOption {
	return func(e *Deepgram) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// NewDeepgram constructs a Deepgram engine using the supplied configuration.
func NewDeepgram(cfg DeepgramConfig, opts ...DeepgramOption) *Deepgram {
	timeout := deepgramDefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = deepgramDefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = deepgramDefaultModel
	}
	engine := &Deepgram{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
				Words      []struct {
					Word       string  `json:"word"`
					Start      float64 `json:"start"`
					End        float64 `json:"end"`
					Confidence float64 `json:"confidence"`
					Speaker    int     `json:"speaker"`
				} `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (e *Deepgram) Transcribe(ctx context.Context, audioPath, meetingID string) (*meeting.Transcript, error) {
	if strings.TrimSpace(e.cfg.APIKey) == "" {
		return nil, fmt.Errorf("deepgram: api key required")
	}
	audio, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("deepgram: open audio: %w", err)
	}
	defer audio.Close()

	endpoint, err := e.buildURL()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, audio)
	if err != nil {
		return nil, fmt.Errorf("deepgram: build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+e.cfg.APIKey)
	req.Header.Set("Content-Type", audioContentType(audioPath))

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("deepgram: read response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("deepgram: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded deepgramResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("deepgram: decode response: %w", err)
	}
	return e.toTranscript(decoded, audioPath, meetingID)
}

func (e *Deepgram) buildURL() (string, error) {
	parsed, err := url.Parse(e.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("deepgram: parse base url: %w", err)
	}
	query := parsed.Query()
	query.Set("model", e.cfg.Model)
	query.Set("punctuate", "true")
	query.Set("smart_format", "true")
	if e.cfg.Language != "" {
		query.Set("language", e.cfg.Language)
	}
	if e.cfg.Diarize {
		query.Set("diarize", "true")
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (e *Deepgram) toTranscript(decoded deepgramResponse, audioPath, meetingID string) (*meeting.Transcript, error) {
	if len(decoded.Results.Channels) == 0 || len(decoded.Results.Channels[0].Alternatives) == 0 {
		return nil, fmt.Errorf("deepgram: response has no alternatives")
	}
	alt := decoded.Results.Channels[0].Alternatives[0]
	if strings.TrimSpace(alt.Transcript) == "" {
		return nil, fmt.Errorf("deepgram: empty transcript")
	}

	// Group consecutive words by speaker into segments. Without diarization
	// every word carries speaker 0 and the transcript collapses to one span.
	var segments []meeting.Segment
	var current *meeting.Segment
	var words []string
	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.Join(words, " ")
		segments = append(segments, *current)
		current = nil
		words = nil
	}
	for _, word := range alt.Words {
		speaker := fmt.Sprintf("SPEAKER_%02d", word.Speaker)
		if current == nil || current.Speaker != speaker {
			flush()
			current = &meeting.Segment{
				Start:      word.Start,
				Speaker:    speaker,
				Confidence: word.Confidence,
				Language:   e.cfg.Language,
			}
		}
		current.End = word.End
		words = append(words, word.Word)
	}
	flush()

	transcript := &meeting.Transcript{
		Info:      meeting.Info{MeetingID: meetingID},
		Text:      alt.Transcript,
		AudioPath: audioPath,
		Segments:  segments,
		Metadata: map[string]any{
			"converter":  "deepgram",
			"model":      e.cfg.Model,
			"confidence": alt.Confidence,
		},
	}
	return transcript, nil
}

func audioContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a", ".aac":
		return "audio/mp4"
	case ".flac":
		return "audio/flac"
	case ".ogg", ".opus":
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}
