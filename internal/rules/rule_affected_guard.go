package rules

import (
	"regexp"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "TS-AFFECTED-GUARD",
		Summary: "Comparison on a possibly-undefined mutation result count; coalesce to 0.",
		Order:   40,
		Apply:   applyAffectedGuard,
	})
}

// Comparison operators only; "(x.affected ?? 0) > 1" does not re-match because
// "??" is not in the operator alternation.
var affectedRe = regexp.MustCompile(`([\w$]+(?:\.[\w$]+)*)\.affected\s*(===|!==|==|!=|>=|<=|>|<)`)

func applyAffectedGuard(content string) (string, []ir.Edit) {
	var edits []ir.Edit
	out := affectedRe.ReplaceAllStringFunc(content, func(m string) string {
		sub := affectedRe.FindStringSubmatch(m)
		expr, op := sub[1], sub[2]
		edits = append(edits, ir.Edit{RuleID: "TS-AFFECTED-GUARD", Detail: expr + ".affected " + op})
		return "(" + expr + ".affected ?? 0) " + op
	})
	if len(edits) == 0 {
		return content, nil
	}
	return out, edits
}
