package render

import "strings"

// Params are passed through from the output spec untouched; these accessors
// apply renderer-side defaults.

func stringParam(params map[string]any, key, fallback string) string {
	if params == nil {
		return fallback
	}
	if value, ok := params[key].(string); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func boolParam(params map[string]any, key string, fallback bool) bool {
	if params == nil {
		return fallback
	}
	if value, ok := params[key].(bool); ok {
		return value
	}
	return fallback
}
