package provider

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ExtractJSON pulls a JSON object out of a model response. Providers
// wrap JSON in prose or markdown fences despite instructions, so
// extraction runs in three stages: the whole trimmed response, the first
// fenced code block, then the outermost brace span.
func ExtractJSON(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isJSONObject(trimmed) {
		return trimmed, true
	}

	if fenced, ok := extractFenced(trimmed); ok && isJSONObject(fenced) {
		return fenced, true
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		span := strings.TrimSpace(trimmed[start : end+1])
		if isJSONObject(span) {
			return span, true
		}
	}

	return "", false
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}

// extractFenced returns the body of the first ``` fence, tolerating a
// language tag on the opening line.
func extractFenced(raw string) (string, bool) {
	start := strings.Index(raw, "```")
	if start < 0 {
		return "", false
	}
	rest := raw[start+3:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		// Drop the language tag line ("json", "JSON", or nothing).
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// coerceFloat reads a number that a model may have emitted as a float,
// an int, or a quoted string. Anything else reads as 0.
func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(val), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// clampScore bounds a provider-reported score to [0, max].
func clampScore(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
