package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"meetscribe/internal/meeting"
	"meetscribe/internal/outputs"
)

const webhookUserAgent = "meetscribe/0.1.0"

// Discord embed limits.
const (
	maxEmbedTitle      = 256
	maxEmbedDesc       = 4096
	maxEmbedFieldValue = 1024
	maxEmbedFields     = 25
)

// Webhook posts the minutes to a Discord-compatible webhook as an embed.
//
// Params: webhook_url (falls back to DISCORD_WEBHOOK_URL), username (default
// MeetScribe), color (default Discord blurple), include_decisions and
// include_action_items (default true), attach (format name of a sibling
// output whose artifact is referenced in the message).
type Webhook struct {
	client *http.Client
}

// NewWebhook builds a webhook renderer. A nil client gets a 15s-timeout
// default.
func NewWebhook(client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Webhook{client: client}
}

type webhookPayload struct {
	Username string         `json:"username,omitempty"`
	Content  string         `json:"content,omitempty"`
	Embeds   []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []webhookField `json:"fields,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

type webhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

func (r *Webhook) Render(ctx context.Context, req outputs.Request) (string, error) {
	endpoint := stringParam(req.Params, "webhook_url", os.Getenv("DISCORD_WEBHOOK_URL"))
	if endpoint == "" {
		return "", fmt.Errorf("webhook render: webhook_url is required (set the param or DISCORD_WEBHOOK_URL)")
	}

	payload := webhookPayload{
		Username: stringParam(req.Params, "username", "MeetScribe"),
		Embeds:   []webhookEmbed{r.buildEmbed(req)},
	}
	if attach := stringParam(req.Params, "attach", ""); attach != "" {
		if artifact, ok := req.Artifacts.Artifact(attach); ok {
			payload.Content = fmt.Sprintf("%s artifact: %s", attach, artifact)
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("webhook render: encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("webhook render: build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", webhookUserAgent)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("webhook render: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("webhook render: webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return endpoint, nil
}

func (r *Webhook) buildEmbed(req outputs.Request) webhookEmbed {
	minutes := req.Minutes
	embed := webhookEmbed{
		Title:       truncate(fmt.Sprintf("Meeting Minutes: %s", meeting.DisplayTitle(meeting.Info{MeetingID: req.MeetingID})), maxEmbedTitle),
		Description: truncate(minutes.Summary, maxEmbedDesc),
		Color:       0x5865F2,
		Timestamp:   minutes.GeneratedAt.UTC().Format(time.RFC3339),
	}

	if boolParam(req.Params, "include_decisions", true) && len(minutes.Decisions) > 0 {
		var lines []string
		for _, decision := range minutes.Decisions {
			line := decision.Description
			if decision.Responsible != "" {
				line += " (" + decision.Responsible + ")"
			}
			lines = append(lines, "• "+line)
		}
		embed.Fields = append(embed.Fields, webhookField{
			Name:  "Decisions",
			Value: truncate(strings.Join(lines, "\n"), maxEmbedFieldValue),
		})
	}

	if boolParam(req.Params, "include_action_items", true) && len(minutes.ActionItems) > 0 {
		var lines []string
		for _, item := range minutes.ActionItems {
			line := item.Description
			if item.Assignee != "" {
				line += " — " + item.Assignee
			}
			lines = append(lines, "• "+line)
		}
		embed.Fields = append(embed.Fields, webhookField{
			Name:  "Action Items",
			Value: truncate(strings.Join(lines, "\n"), maxEmbedFieldValue),
		})
	}

	if len(minutes.Participants) > 0 {
		embed.Fields = append(embed.Fields, webhookField{
			Name:   "Participants",
			Value:  truncate(strings.Join(minutes.Participants, ", "), maxEmbedFieldValue),
			Inline: true,
		})
	}

	if len(embed.Fields) > maxEmbedFields {
		embed.Fields = embed.Fields[:maxEmbedFields]
	}
	return embed
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
