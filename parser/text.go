package parser

import "strings"

// StripCodeFences removes a surrounding Markdown code fence from model
// output, including an optional language tag on the opening fence, and
// trims whitespace. Text without a fence is returned trimmed.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language tag line.
		first := strings.TrimSpace(s[:i])
		if !strings.ContainsAny(first, "{}[]\"") {
			s = s[i+1:]
		} else {
			s = first + s[i:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
