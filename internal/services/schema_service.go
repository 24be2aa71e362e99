package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
	"github.com/SriramAtmakuri/QueryCraft/internal/sqlschema"
)

// SchemaService handles schema generation and parsing. Generation goes
// through the provider; parsing is purely local.
type SchemaService struct {
	completer llm.Completer
}

func NewSchemaService(completer llm.Completer) *SchemaService {
	return &SchemaService{completer: completer}
}

// SchemaResult carries generated DDL plus its parsed structure for
// client-side diagram rendering.
type SchemaResult struct {
	Schema string           `json:"schema"`
	Parsed sqlschema.Schema `json:"parsed"`
}

// GenerateSchema turns a plain-language domain description into CREATE
// TABLE statements.
func (s *SchemaService) GenerateSchema(ctx context.Context, description, dialect string) (*SchemaResult, error) {
	dialect = NormalizeDialect(dialect)

	prompt := fmt.Sprintf(`Design a %s database schema for the following application.
Include primary keys, foreign keys and sensible column types.
Return only the CREATE TABLE statements.

Application: %s`, dialect, description)

	reply, err := s.completer.Complete(ctx, llm.Request{System: systemPrompt, Prompt: prompt})
	if err != nil {
		return nil, err
	}

	ddl := llm.StripFences(reply)
	return &SchemaResult{Schema: ddl, Parsed: sqlschema.ParseSQL(ddl)}, nil
}

// ImageToSchema extracts CREATE TABLE statements from diagram or screenshot
// images. Images arrive as base64 payloads with their mime type.
func (s *SchemaService) ImageToSchema(ctx context.Context, images []llm.ImagePart, dialect string) (*SchemaResult, error) {
	dialect = NormalizeDialect(dialect)

	prompt := fmt.Sprintf(`The attached image shows a database diagram, spreadsheet or table screenshot.
Reconstruct it as %s CREATE TABLE statements, inferring column types and
relationships from what is visible. Return only the SQL.`, dialect)

	reply, err := s.completer.Complete(ctx, llm.Request{
		System: systemPrompt,
		Prompt: prompt,
		Images: images,
	})
	if err != nil {
		return nil, err
	}

	ddl := llm.StripFences(reply)
	return &SchemaResult{Schema: ddl, Parsed: sqlschema.ParseSQL(ddl)}, nil
}

// ParseSchema parses raw DDL or a JSON schema document locally, without a
// provider call.
func (s *SchemaService) ParseSchema(input string) sqlschema.Schema {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return sqlschema.ParseJSON(trimmed)
	}
	return sqlschema.ParseSQL(trimmed)
}
