package sqllint

import (
	"strings"
	"testing"
)

func hasRule(issues []Issue, rule string) bool {
	for _, issue := range issues {
		if issue.Rule == rule {
			return true
		}
	}
	return false
}

func countRule(issues []Issue, rule string) int {
	n := 0
	for _, issue := range issues {
		if issue.Rule == rule {
			n++
		}
	}
	return n
}

func TestDeleteWithoutWhere(t *testing.T) {
	issues := Lint("DELETE FROM users;")
	if !hasRule(issues, "delete-without-where") {
		t.Fatalf("expected delete-without-where, got %+v", issues)
	}

	for _, issue := range issues {
		if issue.Rule == "delete-without-where" && issue.Severity != SeverityError {
			t.Errorf("severity = %s, want error", issue.Severity)
		}
	}

	issues = Lint("DELETE FROM users WHERE id = 1;")
	if hasRule(issues, "delete-without-where") {
		t.Errorf("scoped DELETE must not be flagged, got %+v", issues)
	}
}

func TestUpdateWithoutWhere(t *testing.T) {
	if !hasRule(Lint("UPDATE users SET name = 'x';"), "update-without-where") {
		t.Errorf("unscoped UPDATE should be flagged")
	}
	if hasRule(Lint("UPDATE users SET name = 'x' WHERE id = 1;"), "update-without-where") {
		t.Errorf("scoped UPDATE must not be flagged")
	}
}

func TestUnbalancedParentheses(t *testing.T) {
	issues := Lint("SELECT COUNT(id FROM users")
	if countRule(issues, "unbalanced-parentheses") != 1 {
		t.Fatalf("expected exactly one unbalanced-parentheses issue, got %+v", issues)
	}
	for _, issue := range issues {
		if issue.Rule != "unbalanced-parentheses" {
			continue
		}
		if !strings.Contains(issue.Message, "1 opening") || !strings.Contains(issue.Message, "0 closing") {
			t.Errorf("message must report both counts, got %q", issue.Message)
		}
	}
}

func TestSelectStar(t *testing.T) {
	if !hasRule(Lint("SELECT * FROM users"), "select-star") {
		t.Errorf("SELECT * should be flagged")
	}
	if hasRule(Lint("SELECT id, name FROM users"), "select-star") {
		t.Errorf("column list must not be flagged")
	}
}

func TestLimitWithoutOrder(t *testing.T) {
	if !hasRule(Lint("SELECT id FROM users LIMIT 10"), "limit-without-order") {
		t.Errorf("LIMIT without ORDER BY should be flagged")
	}
	if hasRule(Lint("SELECT id FROM users ORDER BY id LIMIT 10"), "limit-without-order") {
		t.Errorf("ordered LIMIT must not be flagged")
	}
}

func TestLeadingWildcardLike(t *testing.T) {
	if !hasRule(Lint("SELECT id FROM users WHERE name LIKE '%son'"), "leading-wildcard-like") {
		t.Errorf("leading wildcard should be flagged")
	}
	if hasRule(Lint("SELECT id FROM users WHERE name LIKE 'son%'"), "leading-wildcard-like") {
		t.Errorf("anchored pattern must not be flagged")
	}
}

func TestKeywordTypos(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELCT id FROM users", true},
		{"SELECT id FORM users", true},
		{"SELECT id FROM users GROUPBY id", true},
		{"SELECT id FROM users GROUP BY id", false},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			if got := hasRule(Lint(tt.sql), "keyword-typo"); got != tt.want {
				t.Errorf("keyword-typo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrailingComma(t *testing.T) {
	if !hasRule(Lint("SELECT id, name, FROM users"), "trailing-comma") {
		t.Errorf("trailing comma before FROM should be flagged")
	}
}

func TestUnbalancedQuotes(t *testing.T) {
	if !hasRule(Lint("SELECT id FROM users WHERE name = 'bob"), "unbalanced-quotes") {
		t.Errorf("odd quote count should be flagged")
	}
}

func TestEmptyInput(t *testing.T) {
	if issues := Lint("   "); len(issues) != 0 {
		t.Errorf("blank input must yield no issues, got %+v", issues)
	}
}

func TestRulesInIsolation(t *testing.T) {
	// Each rule must be runnable on its own.
	for _, rule := range DefaultRules() {
		t.Run(rule.Name(), func(t *testing.T) {
			if issues := LintWith([]Rule{rule}, "SELECT id FROM users WHERE id = 1"); len(issues) != 0 {
				t.Errorf("clean query flagged by %s: %+v", rule.Name(), issues)
			}
		})
	}
}

func TestIssueOrderIsInsertionOrder(t *testing.T) {
	issues := Lint("SELECT * FROM users LIMIT 5")
	if len(issues) < 2 {
		t.Fatalf("expected multiple issues, got %+v", issues)
	}
	// select-star precedes limit-without-order in the catalogue.
	if issues[0].Rule != "select-star" {
		t.Errorf("first issue = %s, want select-star (insertion order)", issues[0].Rule)
	}
}
