package rulesdsl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EhssanAtassi/tsmend/internal/rules"
)

func writePack(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndRegister(t *testing.T) {
	path := writePack(t, `
rules:
  - id: PACK-CONSOLE-WARN
    summary: console.log in committed code; downgrade to console.warn
    match: 'console\.log\('
    replace: 'console.warn('
`)
	n, err := LoadAndRegister(path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("registered %d rules, want 1", n)
	}

	r, ok := rules.Get("PACK-CONSOLE-WARN")
	if !ok {
		t.Fatal("pack rule not registered")
	}
	out, edits := r.Apply("console.log('a');\nconsole.log('b');\n")
	if len(edits) != 2 {
		t.Fatalf("got %d edits", len(edits))
	}
	if strings.Contains(out, "console.log(") || !strings.Contains(out, "console.warn('b');") {
		t.Fatalf("got %q", out)
	}

	// Replacement no longer matches, so the rule is idempotent.
	again, edits2 := r.Apply(out)
	if again != out || len(edits2) != 0 {
		t.Fatalf("second pass not a no-op: %q (%d edits)", again, len(edits2))
	}
}

func TestSkipIfGuard(t *testing.T) {
	path := writePack(t, `
rules:
  - id: PACK-STRICT-HEADER
    summary: add strict marker
    match: '\A'
    replace: "'use strict';\n"
    skip_if: 'use strict'
`)
	if _, err := LoadAndRegister(path); err != nil {
		t.Fatal(err)
	}
	r, _ := rules.Get("PACK-STRICT-HEADER")

	out, edits := r.Apply("const a = 1;\n")
	if len(edits) != 1 || !strings.HasPrefix(out, "'use strict';\n") {
		t.Fatalf("got %q (%d edits)", out, len(edits))
	}
	again, edits2 := r.Apply(out)
	if again != out || len(edits2) != 0 {
		t.Fatalf("guard failed: %q (%d edits)", again, len(edits2))
	}
}

func TestPackRulesRunAfterBuiltins(t *testing.T) {
	path := writePack(t, `
rules:
  - id: PACK-ORDER-PROBE
    summary: probe
    match: 'zzz-never-matches'
    replace: ''
`)
	if _, err := LoadAndRegister(path); err != nil {
		t.Fatal(err)
	}
	list := rules.List()
	last := list[len(list)-1]
	if !strings.HasPrefix(last.ID, "PACK-") {
		t.Fatalf("pack rule not last: %s", last.ID)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := LoadAndRegister(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file must error")
	}
	path := writePack(t, `
rules:
  - id: PACK-BAD
    match: '([unclosed'
    replace: x
`)
	if _, err := LoadAndRegister(path); err == nil {
		t.Fatal("invalid regex must error")
	}
	path = writePack(t, `
rules:
  - summary: no id
    match: 'x'
`)
	if _, err := LoadAndRegister(path); err == nil {
		t.Fatal("missing id must error")
	}
}
