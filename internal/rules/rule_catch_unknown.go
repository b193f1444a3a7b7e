package rules

import (
	"regexp"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "TS-CATCH-UNKNOWN",
		Summary: "Untyped catch parameter; annotate as unknown.",
		Order:   20,
		Apply:   applyCatchUnknown,
	})
}

// Matches only bare parameters; "catch (e: unknown)" and friends carry a colon
// and never match, which keeps the rule idempotent.
var catchRe = regexp.MustCompile(`catch\s*\(\s*([a-zA-Z_$][\w$]*)\s*\)\s*\{`)

func applyCatchUnknown(content string) (string, []ir.Edit) {
	var edits []ir.Edit
	out := catchRe.ReplaceAllStringFunc(content, func(m string) string {
		name := catchRe.FindStringSubmatch(m)[1]
		edits = append(edits, ir.Edit{RuleID: "TS-CATCH-UNKNOWN", Detail: name})
		return "catch (" + name + ": unknown) {"
	})
	if len(edits) == 0 {
		return content, nil
	}
	return out, edits
}
