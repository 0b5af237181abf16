package wire

import (
	"encoding/json"
	"fmt"
	"strings"
)

// bulletTokens are the list markers observed in backend payloads that send
// a string list as one flattened string. Order does not matter; each token
// is rewritten to a newline before splitting.
var bulletTokens = []string{"•", "*", "- ", "– ", "— "}

// StringList is an ordered sequence of strings that tolerates the two wire
// shapes the backend has used: a native JSON array of strings, or a single
// bulleted/delimited string that is split into entries.
//
// Splitting never fabricates emptiness: a non-empty string that yields no
// pieces after splitting becomes a single-entry list holding the whole
// trimmed string. Empty or null input yields an empty list.
//
// It always marshals back as a native array — the canonical form.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = splitBulleted(s)
		return nil
	}

	if string(data) == "null" {
		*l = nil
		return nil
	}

	return fmt.Errorf("value %s is neither string array nor delimited string", snippet(data))
}

// MarshalJSON implements json.Marshaler, emitting a native array.
// A nil list marshals as [] rather than null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// splitBulleted breaks one flattened string into list entries:
// Windows line endings are normalized, each bullet token becomes a newline,
// pieces are trimmed and empties dropped.
func splitBulleted(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	normalized := strings.ReplaceAll(s, "\r\n", "\n")
	for _, token := range bulletTokens {
		normalized = strings.ReplaceAll(normalized, token, "\n")
	}

	var entries []string
	for _, piece := range strings.Split(normalized, "\n") {
		if p := strings.TrimSpace(piece); p != "" {
			entries = append(entries, p)
		}
	}

	// Non-empty input must never decode to an empty list.
	if len(entries) == 0 {
		return []string{trimmed}
	}
	return entries
}
