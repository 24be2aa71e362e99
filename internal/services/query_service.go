package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
	"github.com/SriramAtmakuri/QueryCraft/internal/models"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"

	"github.com/google/uuid"
)

const systemPrompt = `You are a senior database engineer embedded in QueryCraft, a tool that turns natural language into SQL.
Always produce syntactically valid SQL for the requested dialect.
When asked for JSON, return ONLY a valid JSON object with the requested keys, no prose around it.
When asked for SQL or code, return only the SQL or code, without commentary.`

// SupportedDialects is the fixed dialect list; the name is only ever
// substituted into prompts.
var SupportedDialects = []string{"postgresql", "mysql", "sqlite", "sqlserver"}

const defaultDialect = "postgresql"

// QueryService builds prompts for every SQL operation, calls the provider,
// and reshapes the reply. It holds no per-request state.
type QueryService struct {
	completer   llm.Completer
	historyRepo *repositories.QueryHistoryRepository
}

func NewQueryService(completer llm.Completer, historyRepo *repositories.QueryHistoryRepository) *QueryService {
	return &QueryService{
		completer:   completer,
		historyRepo: historyRepo,
	}
}

// NormalizeDialect lowercases and defaults the dialect name.
func NormalizeDialect(dialect string) string {
	d := strings.ToLower(strings.TrimSpace(dialect))
	if d == "" {
		return defaultDialect
	}
	for _, known := range SupportedDialects {
		if d == known {
			return d
		}
	}
	return defaultDialect
}

// GenerateResult is the reply shape for natural-language generation.
type GenerateResult struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect"`
}

// GenerateSQL turns a natural-language prompt into a query.
func (s *QueryService) GenerateSQL(ctx context.Context, prompt, schema, dialect string) (*GenerateResult, error) {
	dialect = NormalizeDialect(dialect)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s query for the following request.\n", dialect)
	if schema != "" {
		fmt.Fprintf(&b, "\nDatabase schema:\n%s\n", schema)
	}
	fmt.Fprintf(&b, "\nRequest: %s\n\nReturn only the SQL query.", prompt)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: b.String()})
	if err != nil {
		return nil, err
	}

	return &GenerateResult{SQL: llm.StripFences(reply), Dialect: dialect}, nil
}

// RecordHistory persists one generation round-trip for the user. It is a
// no-op without a history repository (unauthenticated deployments).
func (s *QueryService) RecordHistory(userID uuid.UUID, prompt, sql, dialect string) error {
	if s.historyRepo == nil || userID == uuid.Nil {
		return nil
	}
	return s.historyRepo.Create(&models.QueryHistory{
		UserID:  userID,
		Prompt:  prompt,
		SQL:     sql,
		Dialect: dialect,
	})
}

// History returns the user's most recent generations.
func (s *QueryService) History(userID uuid.UUID, limit int) ([]models.QueryHistory, error) {
	return s.historyRepo.ListByUserID(userID, limit)
}

// SetBookmark toggles the bookmark flag on a history entry.
func (s *QueryService) SetBookmark(id, userID uuid.UUID, bookmarked bool) error {
	return s.historyRepo.SetBookmark(id, userID, bookmarked)
}

// ExplainSection is one titled chunk of an explanation.
type ExplainSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ExplainResult is the structured explanation of a query.
type ExplainResult struct {
	Summary  string           `json:"summary"`
	Sections []ExplainSection `json:"sections"`
	Result   string           `json:"result"`
	Tips     []string         `json:"tips"`
}

// ExplainSQL asks the provider for a structured walk-through of the query.
// A reply that does not decode as JSON still yields a 200-able result with
// the raw text as the summary.
func (s *QueryService) ExplainSQL(ctx context.Context, sql string) (*ExplainResult, error) {
	prompt := fmt.Sprintf(`Explain the following SQL query.
Return a JSON object with keys:
  "summary": one-sentence overview,
  "sections": array of {"title", "content"} walking through each clause,
  "result": plain-language description of what the result set contains,
  "tips": array of improvement hints.

SQL:
%s`, sql)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: prompt, JSONMode: true})
	if err != nil {
		return nil, err
	}

	result := &ExplainResult{Sections: []ExplainSection{}, Tips: []string{}}
	if res := llm.ExtractJSON(reply, result); !res.Structured {
		result.Summary = res.Raw
	}
	if result.Sections == nil {
		result.Sections = []ExplainSection{}
	}
	if result.Tips == nil {
		result.Tips = []string{}
	}
	return result, nil
}

// ConvertResult is the outcome of a dialect conversion.
type ConvertResult struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect"`
}

// ConvertSQL rewrites a query into another dialect.
func (s *QueryService) ConvertSQL(ctx context.Context, sql, fromDialect, toDialect string) (*ConvertResult, error) {
	to := NormalizeDialect(toDialect)

	var b strings.Builder
	if fromDialect != "" {
		fmt.Fprintf(&b, "Convert this %s query to %s.\n", NormalizeDialect(fromDialect), to)
	} else {
		fmt.Fprintf(&b, "Convert this SQL query to %s.\n", to)
	}
	fmt.Fprintf(&b, "Preserve semantics exactly. Return only the converted SQL.\n\n%s", sql)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: b.String()})
	if err != nil {
		return nil, err
	}

	return &ConvertResult{SQL: llm.StripFences(reply), Dialect: to}, nil
}

// OptimizeResult carries the rewritten query plus supporting advice.
type OptimizeResult struct {
	OptimizedQuery string   `json:"optimized_query"`
	Improvements   []string `json:"improvements"`
	Indexes        []string `json:"indexes"`
	Tips           []string `json:"tips"`
	Summary        string   `json:"summary"`
}

// OptimizeSQL asks for a faster equivalent query with index suggestions.
// Malformed structured replies fall back to the original query with the raw
// text as the summary.
func (s *QueryService) OptimizeSQL(ctx context.Context, sql, schema string) (*OptimizeResult, error) {
	var b strings.Builder
	b.WriteString("Optimize the following SQL query.\n")
	if schema != "" {
		fmt.Fprintf(&b, "\nDatabase schema:\n%s\n", schema)
	}
	fmt.Fprintf(&b, `
Return a JSON object with keys:
  "optimized_query": the rewritten query,
  "improvements": array of changes made and why,
  "indexes": array of CREATE INDEX statements that would help,
  "tips": array of general advice for this workload,
  "summary": one-sentence overview of the gains.

SQL:
%s`, sql)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: b.String(), JSONMode: true})
	if err != nil {
		return nil, err
	}

	result := &OptimizeResult{Improvements: []string{}, Indexes: []string{}, Tips: []string{}}
	if res := llm.ExtractJSON(reply, result); !res.Structured {
		result.OptimizedQuery = sql
		result.Summary = res.Raw
	}
	if result.Improvements == nil {
		result.Improvements = []string{}
	}
	if result.Indexes == nil {
		result.Indexes = []string{}
	}
	if result.Tips == nil {
		result.Tips = []string{}
	}
	return result, nil
}

// DescribeSQL turns a query back into a natural-language description.
func (s *QueryService) DescribeSQL(ctx context.Context, sql string) (string, error) {
	prompt := fmt.Sprintf(`Describe in plain language what this SQL query does, for a non-technical reader.
Return only the description.

%s`, sql)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: prompt})
	if err != nil {
		return "", err
	}
	return llm.StripFences(reply), nil
}

// DebugResult is the structured diagnosis of a failing query.
type DebugResult struct {
	ErrorType   string `json:"error_type"`
	Explanation string `json:"explanation"`
	Location    string `json:"location"`
	FixedQuery  string `json:"fixed_query"`
	Prevention  string `json:"prevention"`
}

// DebugSQL diagnoses a query given the database error it produced.
func (s *QueryService) DebugSQL(ctx context.Context, sql, dbError, schema string) (*DebugResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "A SQL query failed with this error:\n%s\n\nQuery:\n%s\n", dbError, sql)
	if schema != "" {
		fmt.Fprintf(&b, "\nDatabase schema:\n%s\n", schema)
	}
	b.WriteString(`
Return a JSON object with keys:
  "error_type": short classification,
  "explanation": why the query fails,
  "location": where in the query the problem is,
  "fixed_query": a corrected version,
  "prevention": how to avoid this class of error.`)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: b.String(), JSONMode: true})
	if err != nil {
		return nil, err
	}

	result := &DebugResult{}
	if res := llm.ExtractJSON(reply, result); !res.Structured {
		result.Explanation = res.Raw
	}
	return result, nil
}

// MockResult is a fabricated result set for previewing a query.
type MockResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// MockResults asks the provider to invent plausible rows for the query.
func (s *QueryService) MockResults(ctx context.Context, sql string, rowCount int) (*MockResult, error) {
	if rowCount <= 0 || rowCount > 50 {
		rowCount = 5
	}

	prompt := fmt.Sprintf(`Invent a plausible result set for this SQL query with %d rows.
Return a JSON object with keys:
  "columns": array of column names in result order,
  "rows": array of rows, each an array of values aligned with "columns".

SQL:
%s`, rowCount, sql)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: prompt, JSONMode: true})
	if err != nil {
		return nil, err
	}

	result := &MockResult{Columns: []string{}, Rows: [][]any{}}
	llm.ExtractJSON(reply, result)
	if result.Columns == nil {
		result.Columns = []string{}
	}
	if result.Rows == nil {
		result.Rows = [][]any{}
	}
	return result, nil
}

// PerformanceResult is a simulated execution-cost analysis.
type PerformanceResult struct {
	CostEstimate string   `json:"cost_estimate"`
	Bottlenecks  []string `json:"bottlenecks"`
	Scaling      string   `json:"scaling"`
	Tips         []string `json:"tips"`
}

// AnalyzePerformance asks for a simulated cost analysis of the query. No
// real execution plan is involved.
func (s *QueryService) AnalyzePerformance(ctx context.Context, sql, schema string) (*PerformanceResult, error) {
	var b strings.Builder
	b.WriteString("Analyze the likely runtime performance of this SQL query without executing it.\n")
	if schema != "" {
		fmt.Fprintf(&b, "\nDatabase schema:\n%s\n", schema)
	}
	fmt.Fprintf(&b, `
Return a JSON object with keys:
  "cost_estimate": rough relative cost (e.g. "low", "high with large tables"),
  "bottlenecks": array of likely slow spots,
  "scaling": how cost grows with table size,
  "tips": array of mitigation advice.

SQL:
%s`, sql)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: b.String(), JSONMode: true})
	if err != nil {
		return nil, err
	}

	result := &PerformanceResult{Bottlenecks: []string{}, Tips: []string{}}
	if res := llm.ExtractJSON(reply, result); !res.Structured {
		result.CostEstimate = res.Raw
	}
	if result.Bottlenecks == nil {
		result.Bottlenecks = []string{}
	}
	if result.Tips == nil {
		result.Tips = []string{}
	}
	return result, nil
}

// ormTargets maps export targets to the language of the emitted code.
var ormTargets = map[string]string{
	"prisma":     "typescript",
	"sequelize":  "javascript",
	"typeorm":    "typescript",
	"sqlalchemy": "python",
	"gorm":       "go",
}

// ExportResult is ORM-flavored code equivalent to a SQL query.
type ExportResult struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Target   string `json:"target"`
}

// ErrUnknownTarget is returned for an unsupported ORM export target.
var ErrUnknownTarget = fmt.Errorf("unknown ORM target; supported: prisma, sequelize, typeorm, sqlalchemy, gorm")

// ExportORM rewrites the query as code for the given ORM.
func (s *QueryService) ExportORM(ctx context.Context, sql, target string) (*ExportResult, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	language, ok := ormTargets[target]
	if !ok {
		return nil, ErrUnknownTarget
	}

	prompt := fmt.Sprintf(`Rewrite this SQL query as equivalent %s code using the %s ORM.
Return only the code.

%s`, language, target, sql)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: prompt})
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Code:     llm.StripFences(reply),
		Language: language,
		Target:   target,
	}, nil
}

// Autocomplete suggests completions for a partial natural-language request.
func (s *QueryService) Autocomplete(ctx context.Context, partial, schema string) ([]string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "A user is typing a natural-language database query: %q\n", partial)
	if schema != "" {
		fmt.Fprintf(&b, "\nDatabase schema:\n%s\n", schema)
	}
	b.WriteString(`
Suggest up to 5 likely completions of the full request.
Return a JSON object: {"suggestions": ["...", ...]}.`)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: b.String(), JSONMode: true})
	if err != nil {
		return nil, err
	}

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if res := llm.ExtractJSON(reply, &out); !res.Structured {
		// Fall back to one suggestion per non-empty line.
		for _, line := range strings.Split(res.Raw, "\n") {
			if line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. ")); line != "" {
				out.Suggestions = append(out.Suggestions, line)
			}
		}
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return out.Suggestions, nil
}

// QueryStep is one statement in a dependent multi-step plan.
type QueryStep struct {
	Order       int    `json:"order"`
	Description string `json:"description"`
	SQL         string `json:"sql"`
}

// MultiStep plans a set of dependent SQL statements for a compound request.
func (s *QueryService) MultiStep(ctx context.Context, prompt, schema, dialect string) ([]QueryStep, error) {
	dialect = NormalizeDialect(dialect)

	var b strings.Builder
	fmt.Fprintf(&b, "Break this request into an ordered set of dependent %s statements.\n", dialect)
	if schema != "" {
		fmt.Fprintf(&b, "\nDatabase schema:\n%s\n", schema)
	}
	fmt.Fprintf(&b, `
Request: %s

Return a JSON object: {"steps": [{"order": 1, "description": "...", "sql": "..."}, ...]}.
Later steps may depend on earlier ones (temp tables, CTE results, inserted ids).`, prompt)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: b.String(), JSONMode: true})
	if err != nil {
		return nil, err
	}

	var out struct {
		Steps []QueryStep `json:"steps"`
	}
	if res := llm.ExtractJSON(reply, &out); !res.Structured {
		out.Steps = []QueryStep{{Order: 1, Description: "generated statement", SQL: res.Raw}}
	}
	if out.Steps == nil {
		out.Steps = []QueryStep{}
	}
	return out.Steps, nil
}
