package sqllint

import "strings"

// Severity classifies a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one finding produced by a rule.
type Issue struct {
	Severity   Severity `json:"severity"`
	Rule       string   `json:"rule"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Rule is an independent predicate over the SQL text. Check returns zero or
// more issues; rules never see each other's output.
type Rule interface {
	Name() string
	Check(sql string) []Issue
}

// Lint runs the default rule catalogue over the SQL text. Issues are
// additive and come back in rule order, not severity order. The whole pass
// is a pure function of the input string.
func Lint(sql string) []Issue {
	return LintWith(DefaultRules(), sql)
}

// LintWith runs an explicit rule list, letting callers test rules in
// isolation or trim the catalogue.
func LintWith(rules []Rule, sql string) []Issue {
	issues := []Issue{}
	if strings.TrimSpace(sql) == "" {
		return issues
	}
	for _, rule := range rules {
		issues = append(issues, rule.Check(sql)...)
	}
	return issues
}
