package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var errUnparsableResponse = errors.New("model response is not a JSON object")

var (
	fenceRE  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	objectRE = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseLeadObject parses the model's response as a JSON object. When direct
// parsing fails it strips known wrapper patterns (markdown fences,
// surrounding prose) and retries once locally; there is never a second
// network round-trip for a pure parse failure.
func parseLeadObject(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if raw, ok := tryUnmarshal(text); ok {
		return raw, nil
	}

	if m := fenceRE.FindStringSubmatch(text); m != nil {
		if raw, ok := tryUnmarshal(m[1]); ok {
			return raw, nil
		}
	}
	if m := objectRE.FindString(text); m != "" {
		if raw, ok := tryUnmarshal(m); ok {
			return raw, nil
		}
	}
	return nil, errUnparsableResponse
}

func tryUnmarshal(text string) (map[string]any, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	return raw, true
}
