package sqlformat

import (
	"strings"
	"testing"
)

func TestFormatBasicSelect(t *testing.T) {
	got := Format("select id, name from users where id = 1")
	want := "SELECT\n  id,\n  name\nFROM users\nWHERE id = 1"
	if got != want {
		t.Errorf("Format() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"select id, name from users where id = 1 and active = true",
		"SELECT COUNT(id), MAX(created_at) FROM orders GROUP BY customer_id",
		"select u.id, p.title from users u left join posts p on p.user_id = u.id order by u.id limit 10",
		"delete from sessions where expires_at < now()",
		"update users set name = 'x' where id = 1",
	}
	for _, sql := range inputs {
		t.Run(sql[:20], func(t *testing.T) {
			once := Format(sql)
			twice := Format(once)
			if once != twice {
				t.Errorf("not idempotent:\nfirst:\n%s\nsecond:\n%s", once, twice)
			}
		})
	}
}

func TestFormatKeepsFunctionArgsTogether(t *testing.T) {
	got := Format("select coalesce(a, b), c from t")
	if !strings.Contains(got, "coalesce(a, b),") {
		t.Errorf("function args were split:\n%s", got)
	}
}

func TestFormatSingleColumnStaysInline(t *testing.T) {
	got := Format("select id from users")
	if !strings.HasPrefix(got, "SELECT id") {
		t.Errorf("single column should stay on the SELECT line:\n%s", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format("   "); got != "" {
		t.Errorf("blank input should format to empty, got %q", got)
	}
}

func TestFormatJoinKeywords(t *testing.T) {
	got := Format("select a from t left outer join u on t.id = u.id")
	if !strings.Contains(got, "\nLEFT OUTER JOIN u") {
		t.Errorf("compound join keyword was split:\n%s", got)
	}
	if strings.Contains(got, "OUTER\nJOIN") {
		t.Errorf("JOIN broke out of its compound keyword:\n%s", got)
	}
}

func TestDiff(t *testing.T) {
	original := "SELECT id\nFROM users\nWHERE id = 1"
	modified := "SELECT id\nFROM users\nWHERE id = 2\nORDER BY id"

	lines := Diff(original, modified)

	var same, added, removed int
	for _, line := range lines {
		switch line.Kind {
		case DiffSame:
			same++
		case DiffAdded:
			added++
		case DiffRemoved:
			removed++
		}
	}
	if same != 2 {
		t.Errorf("same = %d, want 2", same)
	}
	if removed != 1 || added != 2 {
		t.Errorf("removed = %d added = %d, want 1 and 2", removed, added)
	}
}

func TestDiffIdentical(t *testing.T) {
	for _, line := range Diff("a\nb", "a\nb") {
		if line.Kind != DiffSame {
			t.Errorf("identical inputs produced %s line %q", line.Kind, line.Text)
		}
	}
}

func TestDiffEmptySides(t *testing.T) {
	if lines := Diff("", "SELECT 1"); len(lines) != 1 || lines[0].Kind != DiffAdded {
		t.Errorf("empty original should yield one added line, got %+v", lines)
	}
	if lines := Diff("SELECT 1", ""); len(lines) != 1 || lines[0].Kind != DiffRemoved {
		t.Errorf("empty modified should yield one removed line, got %+v", lines)
	}
}
