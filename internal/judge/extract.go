package judge

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractFirstObject locates the first JSON object in free-form text and
// returns the verbatim substring spanning it, from the opening brace through
// its true matching close. The decode is structurally aware, so braces inside
// string values and nested objects do not confuse it. Returns ok=false when
// no opening brace exists, the candidate is truncated or invalid, or the
// decoded value is not an object.
func ExtractFirstObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	dec := json.NewDecoder(strings.NewReader(text[start:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", false
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}

	end := start + int(dec.InputOffset())
	return text[start:end], true
}
