package render

import (
	"net/http"

	"meetscribe/internal/outputs"
)

// Registry builds the format→renderer map consumed by the output engine.
// Aliases map to the same renderer instance so artifacts land in one place.
func Registry(defaultDir string, client *http.Client) map[string]outputs.Renderer {
	markdown := NewMarkdown(defaultDir)
	jsonFile := NewJSONFile(defaultDir)
	url := NewURL(defaultDir)
	webhook := NewWebhook(client)
	pdf := NewPDF(defaultDir)

	return map[string]outputs.Renderer{
		"markdown": markdown,
		"md":       markdown,
		"json":     jsonFile,
		"url":      url,
		"webhook":  webhook,
		"discord":  webhook,
		"pdf":      pdf,
	}
}
