package meeting

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Meeting IDs follow YYYY-MM-DDTHH-MM_<source>_<channel>, e.g.
// 2026-08-24T19-00_discord_channel1234.
const idTimeLayout = "2006-01-02T15-04"

// NewID builds a meeting ID from a source type and channel identifier.
// When channel is empty a random short suffix keeps IDs unique.
func NewID(source, channel string, start time.Time) string {
	if start.IsZero() {
		start = time.Now()
	}
	if strings.TrimSpace(channel) == "" {
		channel = uuid.NewString()[:8]
	}
	return fmt.Sprintf("%s_%s_%s",
		start.Format(idTimeLayout),
		sanitizeIDToken(strings.ToLower(source)),
		sanitizeIDToken(channel),
	)
}

// ParseID splits a meeting ID into its start time, source, and channel parts.
func ParseID(id string) (time.Time, string, string, error) {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) != 3 {
		return time.Time{}, "", "", fmt.Errorf("invalid meeting id %q", id)
	}
	start, err := time.Parse(idTimeLayout, parts[0])
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("invalid meeting id %q: %w", id, err)
	}
	if parts[1] == "" || parts[2] == "" {
		return time.Time{}, "", "", fmt.Errorf("invalid meeting id %q", id)
	}
	return start, parts[1], parts[2], nil
}

// ValidID reports whether id parses as a meeting ID.
func ValidID(id string) bool {
	_, _, _, err := ParseID(id)
	return err == nil
}

// DisplayTitle derives a human-readable title from a meeting ID or explicit
// title, title-casing the channel portion when no title is set.
func DisplayTitle(info Info) string {
	if title := strings.TrimSpace(info.Title); title != "" {
		return title
	}
	raw := info.ChannelName
	if raw == "" {
		raw = info.ChannelID
	}
	if raw == "" {
		if _, _, channel, err := ParseID(info.MeetingID); err == nil {
			raw = channel
		}
	}
	if raw == "" {
		return "Untitled Meeting"
	}
	var cleaned strings.Builder
	prevSpace := false
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Meeting"
	}
	return cases.Title(language.Und).String(title)
}

func sanitizeIDToken(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return "unknown"
	}
	return out
}
