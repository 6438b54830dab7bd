package analysis

import (
	"encoding/json"
	"errors"
	"strings"
)

// errNoJSON is returned when model output holds no JSON object or array
var errNoJSON = errors.New("no JSON found in model output")

// extractJSON strips a Markdown code fence wrapped around model output
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	// Drop the language tag line (```json)
	if nl := strings.IndexByte(content, '\n'); nl != -1 && !strings.ContainsAny(content[:nl], "{[") {
		content = content[nl+1:]
	}
	if idx := strings.LastIndex(content, "```"); idx != -1 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}

// jsonSpan returns the text from the first '{' or '[' to the last matching closer
func jsonSpan(content string) (string, bool) {
	start := strings.IndexAny(content, "{[")
	if start == -1 {
		return "", false
	}

	closer := "}"
	if content[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(content, closer)
	if end < start {
		return "", false
	}
	return content[start : end+1], true
}

// decodeJSON sanitizes raw model output and unmarshals the embedded JSON into v
func decodeJSON(raw string, v interface{}) error {
	span, ok := jsonSpan(extractJSON(raw))
	if !ok {
		return errNoJSON
	}
	return json.Unmarshal([]byte(span), v)
}

// decodeStringList decodes a JSON array of strings, keeping trimmed non-empty entries
func decodeStringList(raw string) ([]string, bool) {
	var items []interface{}
	if err := decodeJSON(raw, &items); err != nil {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}

// nonEmptyLines splits text into trimmed non-empty lines
func nonEmptyLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
