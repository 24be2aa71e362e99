package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
)

// stubCompleter returns a canned reply, or an error, without touching any
// provider.
type stubCompleter struct {
	reply string
	err   error

	lastRequest llm.Request
}

func (s *stubCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	s.lastRequest = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestGenerateSQLStripsFences(t *testing.T) {
	stub := &stubCompleter{reply: "```sql\nSELECT id FROM users;\n```"}
	svc := NewQueryService(stub, nil)

	result, err := svc.GenerateSQL(context.Background(), "all user ids", "", "")
	if err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	if result.SQL != "SELECT id FROM users;" {
		t.Errorf("got %q", result.SQL)
	}
	if result.Dialect != "postgresql" {
		t.Errorf("expected default dialect, got %q", result.Dialect)
	}
}

func TestGenerateSQLIncludesSchemaInPrompt(t *testing.T) {
	stub := &stubCompleter{reply: "SELECT 1"}
	svc := NewQueryService(stub, nil)

	if _, err := svc.GenerateSQL(context.Background(), "count orders", "CREATE TABLE orders (id INT);", "mysql"); err != nil {
		t.Fatalf("GenerateSQL: %v", err)
	}
	if !strings.Contains(stub.lastRequest.Prompt, "CREATE TABLE orders") {
		t.Error("schema missing from prompt")
	}
	if !strings.Contains(stub.lastRequest.Prompt, "mysql") {
		t.Error("dialect missing from prompt")
	}
}

func TestGenerateSQLPropagatesProviderError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("provider down")}
	svc := NewQueryService(stub, nil)

	if _, err := svc.GenerateSQL(context.Background(), "anything", "", ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestExplainSQLStructuredReply(t *testing.T) {
	stub := &stubCompleter{reply: `{"summary":"Counts users","sections":[{"title":"FROM","content":"reads users"}],"result":"one number","tips":["add index"]}`}
	svc := NewQueryService(stub, nil)

	result, err := svc.ExplainSQL(context.Background(), "SELECT COUNT(*) FROM users")
	if err != nil {
		t.Fatalf("ExplainSQL: %v", err)
	}
	if result.Summary != "Counts users" {
		t.Errorf("summary = %q", result.Summary)
	}
	if len(result.Sections) != 1 || result.Sections[0].Title != "FROM" {
		t.Errorf("sections = %+v", result.Sections)
	}
	if !stub.lastRequest.JSONMode {
		t.Error("expected JSON mode request")
	}
}

func TestExplainSQLFallsBackToRawText(t *testing.T) {
	stub := &stubCompleter{reply: "This query counts all rows in the users table."}
	svc := NewQueryService(stub, nil)

	result, err := svc.ExplainSQL(context.Background(), "SELECT COUNT(*) FROM users")
	if err != nil {
		t.Fatalf("unparseable reply must not fail the call: %v", err)
	}
	if result.Summary != "This query counts all rows in the users table." {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.Sections == nil || result.Tips == nil {
		t.Error("fallback must keep slices non-nil")
	}
}

func TestOptimizeSQLFallsBackToOriginalQuery(t *testing.T) {
	stub := &stubCompleter{reply: "Just add an index on user_id and it will be fine."}
	svc := NewQueryService(stub, nil)

	original := "SELECT * FROM orders WHERE user_id = 7"
	result, err := svc.OptimizeSQL(context.Background(), original, "")
	if err != nil {
		t.Fatalf("unparseable reply must not fail the call: %v", err)
	}
	if result.OptimizedQuery != original {
		t.Errorf("fallback should echo the original query, got %q", result.OptimizedQuery)
	}
	if result.Summary == "" {
		t.Error("fallback should keep the raw advice")
	}
}

func TestDebugSQLFallback(t *testing.T) {
	stub := &stubCompleter{reply: "The column nme does not exist, you meant name."}
	svc := NewQueryService(stub, nil)

	result, err := svc.DebugSQL(context.Background(), "SELECT nme FROM users", `column "nme" does not exist`, "")
	if err != nil {
		t.Fatalf("DebugSQL: %v", err)
	}
	if result.Explanation == "" {
		t.Error("fallback should carry the raw reply as explanation")
	}
}

func TestExportORMRejectsUnknownTarget(t *testing.T) {
	svc := NewQueryService(&stubCompleter{reply: "irrelevant"}, nil)

	if _, err := svc.ExportORM(context.Background(), "SELECT 1", "hibernate"); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestExportORMTargets(t *testing.T) {
	tests := []struct {
		target   string
		language string
	}{
		{"prisma", "typescript"},
		{"sequelize", "javascript"},
		{"typeorm", "typescript"},
		{"sqlalchemy", "python"},
		{"gorm", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			stub := &stubCompleter{reply: "```\ncode\n```"}
			svc := NewQueryService(stub, nil)

			result, err := svc.ExportORM(context.Background(), "SELECT 1", tt.target)
			if err != nil {
				t.Fatalf("ExportORM: %v", err)
			}
			if result.Language != tt.language {
				t.Errorf("language = %q, want %q", result.Language, tt.language)
			}
			if result.Code != "code" {
				t.Errorf("code = %q", result.Code)
			}
		})
	}
}

func TestAutocompleteFallbackSplitsLines(t *testing.T) {
	stub := &stubCompleter{reply: "- show all users\n- show active users\n"}
	svc := NewQueryService(stub, nil)

	suggestions, err := svc.Autocomplete(context.Background(), "show", "")
	if err != nil {
		t.Fatalf("Autocomplete: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions = %v", suggestions)
	}
	if suggestions[0] != "show all users" {
		t.Errorf("suggestions[0] = %q", suggestions[0])
	}
}

func TestMultiStepFallbackProducesSingleStep(t *testing.T) {
	stub := &stubCompleter{reply: "CREATE TEMP TABLE t AS SELECT 1;"}
	svc := NewQueryService(stub, nil)

	steps, err := svc.MultiStep(context.Background(), "do a thing", "", "")
	if err != nil {
		t.Fatalf("MultiStep: %v", err)
	}
	if len(steps) != 1 || steps[0].SQL == "" {
		t.Fatalf("steps = %+v", steps)
	}
}

func TestMockResultsMalformedReplyYieldsEmptyShape(t *testing.T) {
	stub := &stubCompleter{reply: "cannot do that"}
	svc := NewQueryService(stub, nil)

	result, err := svc.MockResults(context.Background(), "SELECT 1", 3)
	if err != nil {
		t.Fatalf("MockResults: %v", err)
	}
	if result.Columns == nil || result.Rows == nil {
		t.Error("columns and rows must be non-nil")
	}
}

func TestNormalizeDialect(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "postgresql"},
		{"PostgreSQL", "postgresql"},
		{"MYSQL", "mysql"},
		{"sqlite", "sqlite"},
		{"sqlserver", "sqlserver"},
		{"oracle", "postgresql"},
	}

	for _, tt := range tests {
		if got := NormalizeDialect(tt.in); got != tt.want {
			t.Errorf("NormalizeDialect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
