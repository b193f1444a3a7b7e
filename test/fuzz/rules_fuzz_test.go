package fuzz

import (
	"testing"

	"github.com/EhssanAtassi/tsmend/internal/ir"
	"github.com/EhssanAtassi/tsmend/internal/rules"
)

func applyAll(content string) (string, []ir.Edit) {
	var all []ir.Edit
	for _, r := range rules.List() {
		next, es := r.Apply(content)
		content = next
		all = append(all, es...)
	}
	return content, all
}

// Fuzz the full rule set with arbitrary content: no rule may panic, and a
// second pass over the rewritten text must be a no-op.
func FuzzRulesNoPanicAndIdempotent(f *testing.F) {
	seeds := []string{
		"import { A, B } from 'mod';\n\nB();\n",
		"export class S {\n  email: string;\n}\n",
		"try {\n} catch (e) {\n  console.error(e.stack);\n}\n",
		"if (r.affected > 0) {}\n",
		"u = await this.repo.findOne({ id });\n",
		"garbage } catch ( { import {\n",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, content string) {
		once, _ := applyAll(content)
		twice, edits := applyAll(once)
		if len(edits) != 0 {
			t.Fatalf("second pass made %d edits on %q", len(edits), content)
		}
		if twice != once {
			t.Fatalf("not idempotent for %q:\n--- once ---\n%s\n--- twice ---\n%s", content, once, twice)
		}
	})
}
