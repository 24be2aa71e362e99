package llm

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"sql fence", "```sql\nSELECT 1;\n```", "SELECT 1;"},
		{"bare fence", "```\nSELECT 1;\n```", "SELECT 1;"},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fence", "SELECT 1;", "SELECT 1;"},
		{"surrounding whitespace", "  \n```sql\nSELECT 1;\n```\n  ", "SELECT 1;"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractJSONStructured(t *testing.T) {
	var out struct {
		SQL string `json:"sql"`
	}
	res := ExtractJSON("```json\n{\"sql\": \"SELECT 1\"}\n```", &out)
	if !res.Structured {
		t.Fatalf("expected structured branch, raw = %q", res.Raw)
	}
	if out.SQL != "SELECT 1" {
		t.Errorf("sql = %q, want SELECT 1", out.SQL)
	}
}

func TestExtractJSONTrailingCommaRepair(t *testing.T) {
	var out struct {
		Tips []string `json:"tips"`
	}
	res := ExtractJSON(`{"tips": ["a", "b",],}`, &out)
	if !res.Structured {
		t.Fatalf("trailing commas should be repaired, raw = %q", res.Raw)
	}
	if len(out.Tips) != 2 {
		t.Errorf("tips = %v, want 2 entries", out.Tips)
	}
}

func TestExtractJSONEmbeddedInProse(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	reply := "Here is the analysis you asked for:\n{\"summary\": \"fast\"}\nLet me know if you need more."
	if res := ExtractJSON(reply, &out); !res.Structured {
		t.Fatalf("embedded object should decode, raw = %q", res.Raw)
	}
	if out.Summary != "fast" {
		t.Errorf("summary = %q", out.Summary)
	}
}

func TestExtractJSONFallback(t *testing.T) {
	var out map[string]any
	res := ExtractJSON("The query selects all users from the table.", &out)
	if res.Structured {
		t.Fatalf("plain prose must take the raw branch")
	}
	if res.Raw != "The query selects all users from the table." {
		t.Errorf("raw = %q", res.Raw)
	}
}
