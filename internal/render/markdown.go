package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meetscribe/internal/meeting"
	"meetscribe/internal/outputs"
)

const markdownTimeLayout = "2006-01-02 15:04:05"

// Markdown writes formatted meeting minutes to a Markdown file.
//
// Params: output_dir, filename (default minutes.md), include_metadata
// (default true), include_toc (default true).
type Markdown struct {
	defaultDir string
}

// NewMarkdown builds a Markdown renderer rooted at defaultDir.
func NewMarkdown(defaultDir string) *Markdown {
	return &Markdown{defaultDir: defaultDir}
}

func (r *Markdown) Render(ctx context.Context, req outputs.Request) (string, error) {
	dir := stringParam(req.Params, "output_dir", r.defaultDir)
	filename := stringParam(req.Params, "filename", "minutes.md")

	content := MarkdownContent(req.Minutes, req.MeetingID,
		boolParam(req.Params, "include_metadata", true),
		boolParam(req.Params, "include_toc", true),
	)

	target := filepath.Join(dir, req.MeetingID, filename)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("markdown render: create output directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("markdown render: write file: %w", err)
	}
	return target, nil
}

// MarkdownContent builds the Markdown body for a minutes document. It is
// shared with the pdf renderer.
func MarkdownContent(minutes *meeting.Minutes, meetingID string, includeMetadata, includeTOC bool) string {
	var b strings.Builder

	title := fmt.Sprintf("Meeting Minutes: %s", meetingID)
	if custom, ok := minutes.Metadata["title"].(string); ok && strings.TrimSpace(custom) != "" {
		title = custom
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if includeMetadata {
		b.WriteString("| Property | Value |\n|----------|-------|\n")
		fmt.Fprintf(&b, "| Meeting ID | `%s` |\n", meetingID)
		fmt.Fprintf(&b, "| Generated | %s |\n", minutes.GeneratedAt.Format(markdownTimeLayout))
		if engine, ok := minutes.Metadata["llm_engine"].(string); ok && engine != "" {
			fmt.Fprintf(&b, "| LLM Engine | %s |\n", engine)
		}
		b.WriteString("\n")
	}

	if includeTOC {
		b.WriteString("## Table of Contents\n\n- [Summary](#summary)\n")
		if len(minutes.KeyPoints) > 0 {
			b.WriteString("- [Key Points](#key-points)\n")
		}
		if len(minutes.Participants) > 0 {
			b.WriteString("- [Participants](#participants)\n")
		}
		if len(minutes.Decisions) > 0 {
			b.WriteString("- [Decisions](#decisions)\n")
		}
		if len(minutes.ActionItems) > 0 {
			b.WriteString("- [Action Items](#action-items)\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Summary\n\n%s\n\n", minutes.Summary)

	if len(minutes.KeyPoints) > 0 {
		b.WriteString("## Key Points\n\n")
		for _, point := range minutes.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
		b.WriteString("\n")
	}

	if len(minutes.Participants) > 0 {
		b.WriteString("## Participants\n\n")
		for _, participant := range minutes.Participants {
			fmt.Fprintf(&b, "- %s\n", participant)
		}
		b.WriteString("\n")
	}

	if len(minutes.Decisions) > 0 {
		b.WriteString("## Decisions\n\n")
		for i, decision := range minutes.Decisions {
			fmt.Fprintf(&b, "### Decision %d\n\n**Description:** %s\n", i+1, decision.Description)
			if decision.Responsible != "" {
				fmt.Fprintf(&b, "**Responsible:** %s\n", decision.Responsible)
			}
			if decision.Deadline != "" {
				fmt.Fprintf(&b, "**Deadline:** %s\n", decision.Deadline)
			}
			b.WriteString("\n")
		}
	}

	if len(minutes.ActionItems) > 0 {
		b.WriteString("## Action Items\n\n")
		b.WriteString("| # | Description | Assignee | Deadline | Priority |\n")
		b.WriteString("|---|-------------|----------|----------|----------|\n")
		for i, item := range minutes.ActionItems {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
				i+1, item.Description, orDash(item.Assignee), orDash(item.Deadline), orDash(item.Priority))
		}
		b.WriteString("\n")
	}

	if minutes.URL != "" {
		fmt.Fprintf(&b, "## Additional Resources\n\n- [Minutes Notebook](%s)\n\n", minutes.URL)
	}

	fmt.Fprintf(&b, "---\n\n*Generated by meetscribe at %s*\n", minutes.GeneratedAt.Format(markdownTimeLayout))
	return b.String()
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
