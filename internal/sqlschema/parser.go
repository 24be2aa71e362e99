package sqlschema

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Column is a single column extracted from a CREATE TABLE definition.
type Column struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsPrimaryKey bool   `json:"is_primary_key"`
	IsForeignKey bool   `json:"is_foreign_key"`
}

// Table is a parsed table with its columns in declaration order.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Relationship is one foreign-key edge between two tables.
type Relationship struct {
	FromTable  string `json:"from_table"`
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
}

// Schema is the result of parsing a block of DDL or a JSON schema document.
type Schema struct {
	Tables        []Table        `json:"tables"`
	Relationships []Relationship `json:"relationships"`
}

var (
	createTableRegex = regexp.MustCompile(`(?is)CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?[` + "`" + `"\[]?(\w+)[` + "`" + `"\]]?\s*\((.*?)\)\s*;`)
	foreignKeyRegex  = regexp.MustCompile(`(?i)^(?:CONSTRAINT\s+\w+\s+)?FOREIGN\s+KEY\s*\(\s*[` + "`" + `"]?(\w+)[` + "`" + `"]?\s*\)\s*REFERENCES\s+[` + "`" + `"]?(\w+)[` + "`" + `"]?\s*\(\s*[` + "`" + `"]?(\w+)[` + "`" + `"]?\s*\)`)
	primaryKeyRegex  = regexp.MustCompile(`(?i)^(?:CONSTRAINT\s+\w+\s+)?PRIMARY\s+KEY\s*\(\s*([^)]+)\)`)
	referencesRegex  = regexp.MustCompile(`(?i)REFERENCES\s+[` + "`" + `"]?(\w+)[` + "`" + `"]?\s*\(\s*[` + "`" + `"]?(\w+)[` + "`" + `"]?\s*\)`)
	columnDefRegex   = regexp.MustCompile(`^[` + "`" + `"\[]?(\w+)[` + "`" + `"\]]?\s+(\w+(?:\s*\(\s*\d+(?:\s*,\s*\d+)?\s*\))?)`)
)

// table-level keywords that start a constraint rather than a column definition
var constraintKeywords = []string{
	"PRIMARY KEY", "FOREIGN KEY", "CONSTRAINT", "UNIQUE KEY", "UNIQUE (",
	"CHECK", "INDEX", "KEY ",
}

// ParseSQL extracts tables, columns and foreign-key relationships from a
// block of CREATE TABLE statements. Extraction is best-effort and regex
// driven: malformed or exotic syntax yields partial or empty results, it
// never fails. This is a diagramming aid, not a SQL parser.
func ParseSQL(sql string) Schema {
	schema := Schema{Tables: []Table{}, Relationships: []Relationship{}}

	// Strip line comments so commented-out definitions are not picked up.
	sql = regexp.MustCompile(`--[^\n]*`).ReplaceAllString(sql, "")

	// Statements missing a trailing semicolon would be invisible to the
	// statement regex, so make sure the last one is terminated.
	if !strings.HasSuffix(strings.TrimSpace(sql), ";") {
		sql = strings.TrimSpace(sql) + ";"
	}

	for _, match := range createTableRegex.FindAllStringSubmatch(sql, -1) {
		tableName := match[1]
		body := match[2]

		table := Table{Name: tableName, Columns: []Column{}}

		for _, def := range splitColumnDefs(body) {
			def = strings.TrimSpace(def)
			if def == "" {
				continue
			}

			if fk := foreignKeyRegex.FindStringSubmatch(def); fk != nil {
				schema.Relationships = append(schema.Relationships, Relationship{
					FromTable:  tableName,
					FromColumn: fk[1],
					ToTable:    fk[2],
					ToColumn:   fk[3],
				})
				markForeignKey(table.Columns, fk[1])
				continue
			}

			if pk := primaryKeyRegex.FindStringSubmatch(def); pk != nil {
				for _, col := range strings.Split(pk[1], ",") {
					markPrimaryKey(table.Columns, strings.Trim(strings.TrimSpace(col), "`\""))
				}
				continue
			}

			if isConstraintDef(def) {
				continue
			}

			col := columnDefRegex.FindStringSubmatch(def)
			if col == nil {
				continue
			}

			upper := strings.ToUpper(def)
			column := Column{
				Name:         col[1],
				Type:         strings.ToUpper(strings.Join(strings.Fields(col[2]), "")),
				IsPrimaryKey: strings.Contains(upper, "PRIMARY KEY"),
			}

			// Inline REFERENCES clause doubles as a relationship edge.
			if ref := referencesRegex.FindStringSubmatch(def); ref != nil {
				column.IsForeignKey = true
				schema.Relationships = append(schema.Relationships, Relationship{
					FromTable:  tableName,
					FromColumn: column.Name,
					ToTable:    ref[1],
					ToColumn:   ref[2],
				})
			}

			table.Columns = append(table.Columns, column)
		}

		schema.Tables = append(schema.Tables, table)
	}

	return schema
}

// jsonSchemaDoc mirrors the JSON schema documents the frontend produces.
type jsonSchemaDoc struct {
	Tables []struct {
		Name    string `json:"name"`
		Columns []struct {
			Name         string `json:"name"`
			Type         string `json:"type"`
			IsPrimaryKey bool   `json:"is_primary_key"`
			IsForeignKey bool   `json:"is_foreign_key"`
			References   *struct {
				Table  string `json:"table"`
				Column string `json:"column"`
			} `json:"references,omitempty"`
		} `json:"columns"`
	} `json:"tables"`
}

// ParseJSON decodes a JSON schema document into the same shape ParseSQL
// produces. A document that fails to decode yields empty containers.
func ParseJSON(doc string) Schema {
	schema := Schema{Tables: []Table{}, Relationships: []Relationship{}}

	var parsed jsonSchemaDoc
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return schema
	}

	for _, t := range parsed.Tables {
		table := Table{Name: t.Name, Columns: []Column{}}
		for _, c := range t.Columns {
			column := Column{
				Name:         c.Name,
				Type:         c.Type,
				IsPrimaryKey: c.IsPrimaryKey,
				IsForeignKey: c.IsForeignKey,
			}
			if c.References != nil {
				column.IsForeignKey = true
				schema.Relationships = append(schema.Relationships, Relationship{
					FromTable:  t.Name,
					FromColumn: c.Name,
					ToTable:    c.References.Table,
					ToColumn:   c.References.Column,
				})
			}
			table.Columns = append(table.Columns, column)
		}
		schema.Tables = append(schema.Tables, table)
	}

	return schema
}

// splitColumnDefs splits a CREATE TABLE body on commas while respecting
// parenthesis depth, so types like DECIMAL(10,2) stay in one piece. Commas
// inside quoted default expressions are not handled.
func splitColumnDefs(body string) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	for _, r := range body {
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

func isConstraintDef(def string) bool {
	upper := strings.ToUpper(strings.TrimSpace(def))
	for _, kw := range constraintKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

func markPrimaryKey(columns []Column, name string) {
	for i := range columns {
		if strings.EqualFold(columns[i].Name, name) {
			columns[i].IsPrimaryKey = true
			return
		}
	}
}

func markForeignKey(columns []Column, name string) {
	for i := range columns {
		if strings.EqualFold(columns[i].Name, name) {
			columns[i].IsForeignKey = true
			return
		}
	}
}
