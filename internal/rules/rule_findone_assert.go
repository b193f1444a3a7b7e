package rules

import (
	"regexp"
	"strings"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "TS-FINDONE-ASSERT",
		Summary: "Single-record lookup assigned to a non-nullable target; assert non-null.",
		Order:   50,
		Apply:   applyFindOneAssert,
	})
}

var findOneRe = regexp.MustCompile(`await\s+[\w$.]+\.findOne\([^)]*\)`)

func applyFindOneAssert(content string) (string, []ir.Edit) {
	lines := strings.Split(content, "\n")
	var edits []ir.Edit

	for i, line := range lines {
		if !strings.Contains(line, "findOne") || !strings.Contains(line, "=") || !strings.Contains(line, "await") {
			continue
		}
		locs := findOneRe.FindAllStringIndex(line, -1)
		// Insert right to left so earlier indices stay valid.
		for k := len(locs) - 1; k >= 0; k-- {
			end := locs[k][1]
			if guarded(line[end:]) {
				continue
			}
			line = line[:end] + "!" + line[end:]
			edits = append(edits, ir.Edit{RuleID: "TS-FINDONE-ASSERT", Detail: strings.TrimSpace(line[locs[k][0]:end])})
		}
		lines[i] = line
	}

	if len(edits) == 0 {
		return content, nil
	}
	return strings.Join(lines, "\n"), edits
}

// guarded reports whether the call already carries a definite assertion or a
// null-coalescing fallback.
func guarded(rest string) bool {
	if strings.HasPrefix(rest, "!") {
		return true
	}
	trimmed := strings.TrimLeft(rest, " \t")
	return strings.HasPrefix(trimmed, "??")
}
