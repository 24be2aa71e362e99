package sqlformat

import "strings"

// DiffKind tags a diff line.
type DiffKind string

const (
	DiffSame    DiffKind = "same"
	DiffAdded   DiffKind = "added"
	DiffRemoved DiffKind = "removed"
)

// DiffLine is one line of a line-based comparison.
type DiffLine struct {
	Kind DiffKind `json:"kind"`
	Text string   `json:"text"`
}

// Diff compares two SQL texts line by line using a longest-common-subsequence
// walk. Lines are compared after trailing-whitespace trimming; there is no
// token-level awareness.
func Diff(original, modified string) []DiffLine {
	a := splitLines(original)
	b := splitLines(modified)

	// LCS table over trimmed lines.
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	lines := []DiffLine{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			lines = append(lines, DiffLine{Kind: DiffSame, Text: a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			lines = append(lines, DiffLine{Kind: DiffRemoved, Text: a[i]})
			i++
		default:
			lines = append(lines, DiffLine{Kind: DiffAdded, Text: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		lines = append(lines, DiffLine{Kind: DiffRemoved, Text: a[i]})
	}
	for ; j < len(b); j++ {
		lines = append(lines, DiffLine{Kind: DiffAdded, Text: b[j]})
	}
	return lines
}

func splitLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}
