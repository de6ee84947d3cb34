// Package insight — extract.go pulls the JSON payload out of a model
// response. Models wrap JSON in markdown fences, prose, or both; this
// looks for a fenced block first and falls back to the first balanced
// object, instead of trusting the reply to be clean JSON.
package insight

import (
	"errors"
	"strings"
)

// ErrNoJSON — the model response contained no JSON object.
var ErrNoJSON = errors.New("no JSON object in model response")

// ExtractJSON returns the first JSON object found in s.
func ExtractJSON(s string) (string, error) {
	// Preferred: a ```json (or bare ```) fenced block.
	if block, ok := fencedBlock(s); ok {
		block = strings.TrimSpace(block)
		if strings.HasPrefix(block, "{") {
			return block, nil
		}
	}

	// Fallback: first balanced {...} in the raw text. Brace counting is
	// enough here — the stage-one schema has no nested strings with
	// braces worth worrying about, and json.Unmarshal validates after us.
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSON
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSON
}

func fencedBlock(s string) (string, bool) {
	open := strings.Index(s, "```")
	if open < 0 {
		return "", false
	}
	rest := s[open+3:]
	// Skip the info string ("json", "JSON", ...) up to the newline.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
