package sqlformat

import (
	"regexp"
	"strings"
)

// Major keywords that start a new line. Multi-word entries come first so the
// leftmost-first alternation prefers them over their single-word suffixes.
var majorKeywords = []string{
	"LEFT OUTER JOIN", "RIGHT OUTER JOIN", "FULL OUTER JOIN",
	"LEFT JOIN", "RIGHT JOIN", "INNER JOIN", "CROSS JOIN", "FULL JOIN",
	"GROUP BY", "ORDER BY", "INSERT INTO", "DELETE FROM",
	"SELECT", "FROM", "WHERE", "JOIN", "HAVING", "LIMIT", "OFFSET",
	"UNION", "UPDATE", "VALUES", "SET", "ON", "AND", "OR",
}

// Clause continuations that stay indented under their parent clause.
var indentedKeywords = map[string]bool{
	"AND": true,
	"OR":  true,
	"ON":  true,
}

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	keywordRegex    = buildKeywordRegex()
)

func buildKeywordRegex() *regexp.Regexp {
	alternatives := make([]string, len(majorKeywords))
	for i, kw := range majorKeywords {
		alternatives[i] = strings.ReplaceAll(kw, " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(alternatives, "|") + `)\b`)
}

// Format reflows SQL by uppercasing major keywords and breaking the text
// into one clause per line, with SELECT column lists indented one per line.
// It is keyword-driven text surgery: string literals containing keyword
// substrings will be mangled, and nested queries indent only one level.
// Formatting already-formatted output yields the same text.
func Format(sql string) string {
	text := whitespaceRegex.ReplaceAllString(strings.TrimSpace(sql), " ")
	if text == "" {
		return ""
	}

	text = keywordRegex.ReplaceAllStringFunc(text, func(match string) string {
		kw := strings.ToUpper(whitespaceRegex.ReplaceAllString(match, " "))
		if indentedKeywords[kw] {
			return "\n  " + kw
		}
		return "\n" + kw
	})

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		lines = append(lines, breakSelectList(trimmed)...)
	}

	return strings.Join(lines, "\n")
}

// breakSelectList splits a SELECT clause's column list onto indented lines.
func breakSelectList(line string) []string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT ") {
		return []string{line}
	}

	columns := splitTopLevel(trimmed[len("SELECT "):])
	if len(columns) <= 1 {
		return []string{line}
	}

	lines := []string{"SELECT"}
	for i, col := range columns {
		suffix := ","
		if i == len(columns)-1 {
			suffix = ""
		}
		lines = append(lines, "  "+strings.TrimSpace(col)+suffix)
	}
	return lines
}

// splitTopLevel splits on commas outside parentheses, so function calls in
// the column list stay intact.
func splitTopLevel(s string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if r == ',' && depth == 0 {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	parts = append(parts, current.String())
	return parts
}
