package scoring

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no balanced json object in response")

// extractJSONObject returns the first balanced {...} object in raw that is
// valid JSON. Each opening brace is tried in turn, so braces in leading prose
// do not hide the real object. When no candidate parses, the first balanced
// one is returned for the caller to reject.
func extractJSONObject(raw string) (string, error) {
	fallback := ""
	offset := 0
	for {
		next := strings.IndexByte(raw[offset:], '{')
		if next < 0 {
			break
		}
		start := offset + next

		if candidate, ok := balancedObject(raw[start:]); ok {
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
			if fallback == "" {
				fallback = candidate
			}
		}
		offset = start + 1
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", errNoJSONObject
}

// balancedObject scans s, which starts with '{', up to the matching closing
// brace, skipping braces inside string literals.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}

	return "", false
}
