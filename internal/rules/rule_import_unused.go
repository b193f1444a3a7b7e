package rules

import (
	"regexp"
	"strings"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "TS-IMPORT-UNUSED",
		Summary: "Named import bindings never referenced; prune or comment out the import.",
		Order:   60,
		Apply:   applyImportUnused,
	})
}

// Single-line named imports only; default and namespace imports are out of
// reach for a textual usage check and are left alone.
var importRe = regexp.MustCompile(`^import\s*\{([^}]+)\}\s*from\s*['"]([^'"]+)['"];?\s*$`)

func applyImportUnused(content string) (string, []ir.Edit) {
	lines := strings.Split(content, "\n")
	var edits []ir.Edit

	for i, line := range lines {
		m := importRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		names, from := splitImports(m[1]), m[2]

		rest := restOfFile(lines, i)
		var used, removed []string
		for _, n := range names {
			// Aliased imports bind the alias, so usage is checked by it.
			if Used(bindingName(n), rest) {
				used = append(used, n)
			} else {
				removed = append(removed, bindingName(n))
			}
		}

		switch {
		case len(removed) == 0:
			// Everything referenced: leave the line byte-identical.
			continue
		case len(used) == 0:
			// Comment out rather than delete, so the change is auditable
			// and reversible.
			lines[i] = "// " + line
		default:
			lines[i] = "import { " + strings.Join(used, ", ") + " } from '" + from + "';"
		}
		edits = append(edits, ir.Edit{
			RuleID: "TS-IMPORT-UNUSED",
			Detail: strings.Join(removed, ", ") + " from '" + from + "'",
		})
	}

	if len(edits) == 0 {
		return content, nil
	}
	return strings.Join(lines, "\n"), edits
}

func splitImports(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// bindingName resolves "original as alias" to the alias.
func bindingName(imp string) string {
	parts := strings.Split(imp, " as ")
	return strings.TrimSpace(parts[len(parts)-1])
}

// restOfFile is the file text with the import statement itself removed.
func restOfFile(lines []string, skip int) string {
	var b strings.Builder
	for i, l := range lines {
		if i == skip {
			continue
		}
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
