package services

import (
	"context"
	"testing"

	"github.com/SriramAtmakuri/QueryCraft/internal/llm"
)

func TestGenerateSchemaParsesReturnedDDL(t *testing.T) {
	stub := &stubCompleter{reply: "```sql\nCREATE TABLE users (\n  id INT PRIMARY KEY,\n  email VARCHAR(255)\n);\n```"}
	svc := NewSchemaService(stub)

	result, err := svc.GenerateSchema(context.Background(), "a user directory", "")
	if err != nil {
		t.Fatalf("GenerateSchema: %v", err)
	}
	if len(result.Parsed.Tables) != 1 || result.Parsed.Tables[0].Name != "users" {
		t.Fatalf("parsed tables = %+v", result.Parsed.Tables)
	}
	if result.Schema == "" {
		t.Error("raw DDL missing from result")
	}
}

func TestImageToSchemaForwardsImages(t *testing.T) {
	stub := &stubCompleter{reply: "CREATE TABLE products (id INT PRIMARY KEY);"}
	svc := NewSchemaService(stub)

	images := []llm.ImagePart{{MimeType: "image/png", Base64: "aGVsbG8="}}
	result, err := svc.ImageToSchema(context.Background(), images, "mysql")
	if err != nil {
		t.Fatalf("ImageToSchema: %v", err)
	}
	if len(stub.lastRequest.Images) != 1 {
		t.Fatal("image not forwarded to the provider request")
	}
	if len(result.Parsed.Tables) != 1 {
		t.Fatalf("parsed tables = %+v", result.Parsed.Tables)
	}
}

func TestParseSchemaDetectsJSONInput(t *testing.T) {
	svc := NewSchemaService(nil)

	schema := svc.ParseSchema(`{"tables":[{"name":"t","columns":[{"name":"id","type":"INT"}]}],"relationships":[]}`)
	if len(schema.Tables) != 1 || schema.Tables[0].Name != "t" {
		t.Fatalf("tables = %+v", schema.Tables)
	}

	schema = svc.ParseSchema("CREATE TABLE s (id INT PRIMARY KEY);")
	if len(schema.Tables) != 1 || schema.Tables[0].Name != "s" {
		t.Fatalf("tables = %+v", schema.Tables)
	}
}
