package sqllint

import (
	"fmt"
	"regexp"
	"strings"
)

// regexRule flags a single textual pattern. Most of the catalogue is built
// from these.
type regexRule struct {
	name       string
	pattern    *regexp.Regexp
	severity   Severity
	message    string
	suggestion string
}

func (r *regexRule) Name() string { return r.name }

func (r *regexRule) Check(sql string) []Issue {
	if !r.pattern.MatchString(sql) {
		return nil
	}
	return []Issue{{
		Severity:   r.severity,
		Rule:       r.name,
		Message:    r.message,
		Suggestion: r.suggestion,
	}}
}

// funcRule wraps an arbitrary check, for rules that need more than a single
// pattern test (statement scoping, balance counting, typo scanning).
type funcRule struct {
	name  string
	check func(sql string) []Issue
}

func (r *funcRule) Name() string             { return r.name }
func (r *funcRule) Check(sql string) []Issue { return r.check(sql) }

// DefaultRules returns the full catalogue in its fixed order.
func DefaultRules() []Rule {
	return []Rule{
		&regexRule{
			name:       "select-star",
			pattern:    regexp.MustCompile(`(?i)SELECT\s+\*`),
			severity:   SeverityWarning,
			message:    "SELECT * fetches every column",
			suggestion: "List only the columns you need",
		},
		&funcRule{name: "delete-without-where", check: checkDeleteWithoutWhere},
		&funcRule{name: "update-without-where", check: checkUpdateWithoutWhere},
		&regexRule{
			name:       "leading-wildcard-like",
			pattern:    regexp.MustCompile(`(?i)\bLIKE\s+'%`),
			severity:   SeverityWarning,
			message:    "Leading-wildcard LIKE cannot use an index",
			suggestion: "Anchor the pattern or use full-text search",
		},
		&funcRule{name: "unbalanced-parentheses", check: checkParentheses},
		&funcRule{name: "unbalanced-quotes", check: checkQuotes},
		&funcRule{name: "limit-without-order", check: checkLimitWithoutOrder},
		&regexRule{
			name:       "function-on-column",
			pattern:    regexp.MustCompile(`(?i)\bWHERE\s+(?:UPPER|LOWER|TRIM|SUBSTR|SUBSTRING|DATE|YEAR|MONTH|CAST)\s*\(\s*\w+`),
			severity:   SeverityWarning,
			message:    "Function call on a column in WHERE defeats index usage",
			suggestion: "Rewrite the predicate so the column stands alone",
		},
		&funcRule{name: "keyword-typo", check: checkTypos},
		&regexRule{
			name:     "trailing-comma",
			pattern:  regexp.MustCompile(`(?i),\s+FROM\b`),
			severity: SeverityError,
			message:  "Trailing comma before FROM",
		},
	}
}

var (
	deleteStmtRegex = regexp.MustCompile(`(?is)^\s*DELETE\s+FROM\s+\w+`)
	updateStmtRegex = regexp.MustCompile(`(?is)^\s*UPDATE\s+\w+\s+SET\b`)
	whereRegex      = regexp.MustCompile(`(?i)\bWHERE\b`)
	limitRegex      = regexp.MustCompile(`(?i)\bLIMIT\s+\d+`)
	orderByRegex    = regexp.MustCompile(`(?i)\bORDER\s+BY\b`)
)

// statements splits on semicolons. Quoted semicolons are not respected,
// matching the rest of the catalogue's text-level contract.
func statements(sql string) []string {
	return strings.Split(sql, ";")
}

func checkDeleteWithoutWhere(sql string) []Issue {
	var issues []Issue
	for _, stmt := range statements(sql) {
		if deleteStmtRegex.MatchString(stmt) && !whereRegex.MatchString(stmt) {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Rule:       "delete-without-where",
				Message:    "DELETE without a WHERE clause removes every row",
				Suggestion: "Add a WHERE clause or use TRUNCATE deliberately",
			})
		}
	}
	return issues
}

func checkUpdateWithoutWhere(sql string) []Issue {
	var issues []Issue
	for _, stmt := range statements(sql) {
		if updateStmtRegex.MatchString(stmt) && !whereRegex.MatchString(stmt) {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Rule:       "update-without-where",
				Message:    "UPDATE without a WHERE clause modifies every row",
				Suggestion: "Add a WHERE clause to scope the update",
			})
		}
	}
	return issues
}

func checkLimitWithoutOrder(sql string) []Issue {
	if !limitRegex.MatchString(sql) || orderByRegex.MatchString(sql) {
		return nil
	}
	return []Issue{{
		Severity:   SeverityInfo,
		Rule:       "limit-without-order",
		Message:    "LIMIT without ORDER BY returns rows in an undefined order",
		Suggestion: "Add ORDER BY to make the result deterministic",
	}}
}

// checkParentheses reports one error when opening and closing counts differ.
func checkParentheses(sql string) []Issue {
	open := strings.Count(sql, "(")
	closed := strings.Count(sql, ")")
	if open == closed {
		return nil
	}
	return []Issue{{
		Severity: SeverityError,
		Rule:     "unbalanced-parentheses",
		Message:  fmt.Sprintf("Unbalanced parentheses: %d opening, %d closing", open, closed),
	}}
}

// checkQuotes reports an error for an odd number of single quotes. Escaped
// quotes ('') count as two, which keeps the parity correct.
func checkQuotes(sql string) []Issue {
	if strings.Count(sql, "'")%2 == 0 {
		return nil
	}
	return []Issue{{
		Severity: SeverityError,
		Rule:     "unbalanced-quotes",
		Message:  "Unterminated string literal: odd number of single quotes",
	}}
}

var keywordTypos = map[string]string{
	"SELCT":   "SELECT",
	"SLECT":   "SELECT",
	"FORM":    "FROM",
	"FROMM":   "FROM",
	"WHER":    "WHERE",
	"WHRE":    "WHERE",
	"GROUPBY": "GROUP BY",
	"ORDERBY": "ORDER BY",
	"HAVNG":   "HAVING",
	"INSRT":   "INSERT",
	"UPDAT":   "UPDATE",
	"DELTE":   "DELETE",
	"JOINN":   "JOIN",
	"DISTICT": "DISTINCT",
	"BETWEN":  "BETWEEN",
}

var wordRegex = regexp.MustCompile(`[A-Za-z]+`)

// checkTypos scans standalone words against the known-typo table.
func checkTypos(sql string) []Issue {
	var issues []Issue
	for _, word := range wordRegex.FindAllString(sql, -1) {
		if correct, ok := keywordTypos[strings.ToUpper(word)]; ok {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Rule:       "keyword-typo",
				Message:    fmt.Sprintf("%q looks like a typo of %s", word, correct),
				Suggestion: fmt.Sprintf("Replace %q with %s", word, correct),
			})
		}
	}
	return issues
}
