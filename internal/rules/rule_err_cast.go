package rules

import (
	"regexp"
	"strings"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "TS-ERR-CAST",
		Summary: "Error property access on an unknown-typed catch binding; cast to Error.",
		Order:   30,
		Apply:   applyErrCast,
	})
}

// Conventional exception binding names only, to keep false positives down
// (a field named "message" on an unrelated object must not be touched).
var errPropRe = regexp.MustCompile(`\b(error|err|e|ex|exception)\.(stack|message|toString\(\))`)

func applyErrCast(content string) (string, []ir.Edit) {
	// Only files that actually have a catch block anywhere.
	if !strings.Contains(content, "catch (") && !strings.Contains(content, "catch(") {
		return content, nil
	}

	// File-wide guard per identifier, evaluated against the input snapshot:
	// once "(err as Error)" exists anywhere, the rule stays silent for "err"
	// on every later run.
	cast := func(name string) bool {
		return strings.Contains(content, "("+name+" as Error)")
	}

	var edits []ir.Edit
	out := errPropRe.ReplaceAllStringFunc(content, func(m string) string {
		sub := errPropRe.FindStringSubmatch(m)
		name, prop := sub[1], sub[2]
		if cast(name) {
			return m
		}
		edits = append(edits, ir.Edit{RuleID: "TS-ERR-CAST", Detail: name + "." + prop})
		return "(" + name + " as Error)." + prop
	})
	if len(edits) == 0 {
		return content, nil
	}
	return out, edits
}
