// Package parser isolates JSON payloads from free-form AI output.
//
// Planner models are instructed to return only JSON but routinely wrap it in
// markdown fences or prose. ExtractObject strips fences first, then falls
// back to bracket matching that respects string literals.
package parser

import (
	"fmt"
	"strings"
)

// ExtractObject returns the first complete JSON object found in text.
// Returns an error when no object is present or braces never balance; it
// does not validate the JSON itself, leaving schema checks to the caller.
func ExtractObject(text string) ([]byte, error) {
	cleaned := stripFences(strings.TrimSpace(text))

	start := strings.Index(cleaned, "{")
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in response")
	}

	raw := cleaned[start:]
	end, ok := matchBraces(raw)
	if !ok {
		return nil, fmt.Errorf("unbalanced braces in response")
	}

	return []byte(raw[:end+1]), nil
}

// stripFences removes a leading ```json (or bare ```) fence and the matching
// trailing fence, when present.
func stripFences(text string) string {
	const fence = "```"

	if strings.HasPrefix(text, fence+"json") {
		text = text[len(fence+"json"):]
	} else if strings.HasPrefix(text, fence) {
		text = text[len(fence):]
	} else {
		return text
	}

	text = strings.TrimSpace(text)
	if idx := strings.LastIndex(text, fence); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// matchBraces walks raw (which must start with '{') counting nesting depth
// while respecting string literals and escaped quotes. Returns the index of
// the matching close brace.
func matchBraces(raw string) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}

	return 0, false
}
