package rules

import (
	"regexp"
	"strings"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "TS-PROP-DEFINITE",
		Summary: "Class field declared without initializer; add definite-assignment assertion (!).",
		Order:   10,
		Apply:   applyPropDefinite,
	})
}

// Shape: "  name: Type;" with optional trailing comment. Indentation, the type
// text and the comment are preserved verbatim.
var propRe = regexp.MustCompile(`^(\s+)([a-zA-Z_$][\w$]*)(\s*):(.*);(\s*)(//.*)?$`)

func applyPropDefinite(content string) (string, []ir.Edit) {
	lines := strings.Split(content, "\n")
	var edits []ir.Edit

	for i, line := range lines {
		// Already marked (!, ?), initialized (=), or part of a parameter
		// list / method signature (parentheses): leave untouched.
		if strings.ContainsAny(line, "!?=(") {
			continue
		}
		m := propRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent, name, typePart, tail, comment := m[1], m[2], m[4], m[5], m[6]
		if len(indent) < 2 {
			continue
		}
		lines[i] = indent + name + "!:" + typePart + ";" + tail + comment
		edits = append(edits, ir.Edit{RuleID: "TS-PROP-DEFINITE", Detail: name})
	}

	if len(edits) == 0 {
		return content, nil
	}
	return strings.Join(lines, "\n"), edits
}
