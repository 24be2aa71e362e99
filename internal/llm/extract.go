package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Every endpoint that expects a structured reply goes through the same
// extraction path: strip the Markdown fence the model tends to wrap its
// answer in, then try to decode JSON with light repair. The outcome is an
// explicit two-branch result so callers decide what a raw-text fallback
// means for their response shape.

var (
	fenceRegex         = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*\\s*\n?(.*?)\n?```\\s*$")
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
)

// StripFences removes a Markdown code fence wrapping the reply, if present,
// and trims surrounding whitespace.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := fenceRegex.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// Result is the outcome of extracting a structured value from a reply.
// Exactly one branch applies: Structured is true and v was populated, or
// the reply did not decode and Raw carries the fenced-stripped text.
type Result struct {
	Structured bool
	Raw        string
}

// ExtractJSON strips fences and decodes the remainder into v. When the text
// is not valid JSON it retries once with trailing commas removed; if that
// also fails, the raw text comes back for the caller's fallback shape. The
// reply may embed the JSON object in surrounding prose.
func ExtractJSON(text string, v any) Result {
	stripped := StripFences(text)

	candidate := stripped
	if !looksLikeJSON(candidate) {
		candidate = carveJSON(stripped)
	}
	if candidate == "" {
		return Result{Raw: stripped}
	}

	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return Result{Structured: true}
	}

	repaired := trailingCommaRegex.ReplaceAllString(candidate, "$1")
	if err := json.Unmarshal([]byte(repaired), v); err == nil {
		return Result{Structured: true}
	}

	return Result{Raw: stripped}
}

func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// carveJSON pulls the outermost {...} or [...] span out of surrounding
// prose. Returns "" when no span is found.
func carveJSON(s string) string {
	for _, pair := range [][2]rune{{'{', '}'}, {'[', ']'}} {
		start := strings.IndexRune(s, pair[0])
		end := strings.LastIndex(s, string(pair[1]))
		if start >= 0 && end > start {
			return s[start : end+1]
		}
	}
	return ""
}
