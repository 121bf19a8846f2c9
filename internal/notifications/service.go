package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "meetscribe/0.1.0"

// Service defines the notification surface exposed to the pipeline runner.
type Service interface {
	NotifyRunStarted(ctx context.Context, meetingID string) error
	NotifyTranscriptReady(ctx context.Context, meetingID string, segments int) error
	NotifyMinutesReady(ctx context.Context, meetingID, summary string) error
	NotifyOutputsCompleted(ctx context.Context, meetingID string, successful, failed, skipped int, duration time.Duration) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when a topic URL
// is configured. An empty topic returns a noop implementation.
func NewService(topic string, timeoutSeconds int) Service {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, meetingID string) error {
	data := payload{
		title:   "MeetScribe - Run Started",
		message: fmt.Sprintf("Processing meeting: %s", strings.TrimSpace(meetingID)),
		tags:    []string{"meetscribe", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTranscriptReady(ctx context.Context, meetingID string, segments int) error {
	message := fmt.Sprintf("Transcript ready: %s", strings.TrimSpace(meetingID))
	if segments > 0 {
		message = fmt.Sprintf("%s (%d segments)", message, segments)
	}
	data := payload{
		title:   "MeetScribe - Transcript Ready",
		message: message,
		tags:    []string{"meetscribe", "convert", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyMinutesReady(ctx context.Context, meetingID, summary string) error {
	message := fmt.Sprintf("Minutes generated: %s", strings.TrimSpace(meetingID))
	if summary = strings.TrimSpace(summary); summary != "" {
		message = fmt.Sprintf("%s\n%s", message, summary)
	}
	data := payload{
		title:   "MeetScribe - Minutes Ready",
		message: message,
		tags:    []string{"meetscribe", "minutes", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyOutputsCompleted(ctx context.Context, meetingID string, successful, failed, skipped int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title, message string
	if failed == 0 {
		title = "MeetScribe - Outputs Complete"
		message = fmt.Sprintf("%s: %d outputs delivered in %s", strings.TrimSpace(meetingID), successful, durationText)
	} else {
		title = "MeetScribe - Outputs Complete (with errors)"
		message = fmt.Sprintf("%s: %d succeeded, %d failed in %s", strings.TrimSpace(meetingID), successful, failed, durationText)
	}
	if skipped > 0 {
		message = fmt.Sprintf("%s (%d skipped)", message, skipped)
	}

	data := payload{
		title:    title,
		message:  message,
		tags:     []string{"meetscribe", "outputs", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "MeetScribe - Error",
		message:  builder.String(),
		tags:     []string{"meetscribe", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "MeetScribe - Test",
		message:  "Notification system test",
		tags:     []string{"meetscribe", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, string) error { return nil }
func (noopService) NotifyTranscriptReady(context.Context, string, int) error {
	return nil
}
func (noopService) NotifyMinutesReady(context.Context, string, string) error {
	return nil
}
func (noopService) NotifyOutputsCompleted(context.Context, string, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
