package rules

import (
	"strings"
	"testing"
)

func applyAll(t *testing.T, content string) (string, int) {
	t.Helper()
	edits := 0
	for _, r := range List() {
		next, es := r.Apply(content)
		content = next
		edits += len(es)
	}
	return content, edits
}

func TestPropDefinite_AnnotatesBareField(t *testing.T) {
	in := "export class A {\n  email: string;\n}\n"
	out, es := applyPropDefinite(in)
	if len(es) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(es))
	}
	if !strings.Contains(out, "  email!: string;") {
		t.Fatalf("missing annotation:\n%s", out)
	}
}

func TestPropDefinite_PreservesIndentAndComment(t *testing.T) {
	in := "  createdAt: Date;  // set by hook\n"
	out, _ := applyPropDefinite(in)
	want := "  createdAt!: Date;  // set by hook\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestPropDefinite_SkipsMarkedAndInitialized(t *testing.T) {
	for _, in := range []string{
		"  email!: string;\n",
		"  email?: string;\n",
		"  email: string = 'x';\n",
		"  greet(id: number): void {\n",
		"constructor(private repo: Repo) {}\n",
	} {
		if out, es := applyPropDefinite(in); out != in || len(es) != 0 {
			t.Fatalf("should not touch %q, got %q (%d edits)", in, out, len(es))
		}
	}
}

func TestCatchUnknown_TypesBareParameter(t *testing.T) {
	in := "try {\n} catch (err) {\n}\n"
	out, es := applyCatchUnknown(in)
	if len(es) != 1 || !strings.Contains(out, "catch (err: unknown) {") {
		t.Fatalf("got %q (%d edits)", out, len(es))
	}
}

func TestCatchUnknown_SkipsTyped(t *testing.T) {
	in := "} catch (e: unknown) {\n} catch (e: any) {\n} catch (e: HttpException) {\n"
	if out, es := applyCatchUnknown(in); out != in || len(es) != 0 {
		t.Fatalf("typed catch must stay byte-identical, got %q (%d edits)", out, len(es))
	}
}

func TestErrCast_CastsInsideCatchFiles(t *testing.T) {
	in := "try {\n} catch (err: unknown) {\n  console.error(err.stack);\n  log(err.message);\n}\n"
	out, es := applyErrCast(in)
	if len(es) != 2 {
		t.Fatalf("expected 2 edits, got %d:\n%s", len(es), out)
	}
	if !strings.Contains(out, "(err as Error).stack") || !strings.Contains(out, "(err as Error).message") {
		t.Fatalf("missing casts:\n%s", out)
	}
}

func TestErrCast_IgnoresFilesWithoutCatch(t *testing.T) {
	in := "const x = err.message;\n"
	if out, es := applyErrCast(in); out != in || len(es) != 0 {
		t.Fatalf("no catch token, must not fire: %q", out)
	}
}

func TestErrCast_FileWideGuard(t *testing.T) {
	// One existing cast for the identifier silences the rule for that
	// identifier across the whole file.
	in := "} catch (err) {\n  a((err as Error).stack);\n  b(err.message);\n}\n"
	if out, es := applyErrCast(in); out != in || len(es) != 0 {
		t.Fatalf("guard must hold file-wide, got %q (%d edits)", out, len(es))
	}
}

func TestAffectedGuard_WrapsComparison(t *testing.T) {
	in := "if (result.affected > 0) {\n"
	out, es := applyAffectedGuard(in)
	if len(es) != 1 || !strings.Contains(out, "(result.affected ?? 0) > 0") {
		t.Fatalf("got %q (%d edits)", out, len(es))
	}
}

func TestAffectedGuard_SkipsGuarded(t *testing.T) {
	in := "if ((result.affected ?? 0) === 0) {\n"
	if out, es := applyAffectedGuard(in); out != in || len(es) != 0 {
		t.Fatalf("already guarded, got %q (%d edits)", out, len(es))
	}
}

func TestAffectedGuard_DottedReceiver(t *testing.T) {
	in := "res.raw.affected !== 1\n"
	out, _ := applyAffectedGuard(in)
	if !strings.Contains(out, "(res.raw.affected ?? 0) !== 1") {
		t.Fatalf("got %q", out)
	}
}

func TestFindOneAssert_AppendsAssertion(t *testing.T) {
	in := "user = await this.repo.findOne({ where: { id } });\n"
	out, es := applyFindOneAssert(in)
	if len(es) != 1 || !strings.Contains(out, "findOne({ where: { id } })!;") {
		t.Fatalf("got %q (%d edits)", out, len(es))
	}
}

func TestFindOneAssert_SkipsGuarded(t *testing.T) {
	for _, in := range []string{
		"user = await this.repo.findOne({ id })!;\n",
		"user = await this.repo.findOne({ id }) ?? fallback;\n",
		"const rows = await this.repo.find({ id });\n", // not findOne
	} {
		if out, es := applyFindOneAssert(in); out != in || len(es) != 0 {
			t.Fatalf("should not touch %q, got %q (%d edits)", in, out, len(es))
		}
	}
}

func TestImportUnused_PrunesPartially(t *testing.T) {
	in := "import { A, B, C } from 'mod';\n\nconst x = new B();\n"
	out, es := applyImportUnused(in)
	if len(es) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(es))
	}
	if !strings.Contains(out, "import { B } from 'mod';") {
		t.Fatalf("got %q", out)
	}
	if strings.Contains(out, "A,") || strings.Contains(out, ", C") {
		t.Fatalf("unused names survived: %q", out)
	}
}

func TestImportUnused_CommentsOutDeadImport(t *testing.T) {
	in := "import { A, B } from 'mod';\n\nconst x = 1;\n"
	out, _ := applyImportUnused(in)
	if !strings.Contains(out, "// import { A, B } from 'mod';") {
		t.Fatalf("dead import should be commented out, got %q", out)
	}
}

func TestImportUnused_AllUsedStaysByteIdentical(t *testing.T) {
	in := "import {A,B} from \"mod\";\n\nA(); B();\n"
	if out, es := applyImportUnused(in); out != in || len(es) != 0 {
		t.Fatalf("fully-used import must stay byte-identical, got %q (%d edits)", out, len(es))
	}
}

func TestImportUnused_AliasCheckedByAlias(t *testing.T) {
	in := "import { Long as L, Other } from 'mod';\n\nconst x: L = 1;\n"
	out, _ := applyImportUnused(in)
	if !strings.Contains(out, "import { Long as L } from 'mod';") {
		t.Fatalf("alias usage must keep the aliased import, got %q", out)
	}
}

func TestRuleOrderIsFixed(t *testing.T) {
	want := []string{
		"TS-PROP-DEFINITE",
		"TS-CATCH-UNKNOWN",
		"TS-ERR-CAST",
		"TS-AFFECTED-GUARD",
		"TS-FINDONE-ASSERT",
		"TS-IMPORT-UNUSED",
	}
	got := List()
	if len(got) < len(want) {
		t.Fatalf("expected at least %d rules, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("rule %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestDisabledRuleIsSkipped(t *testing.T) {
	SetSettings(Settings{Disabled: map[string]bool{"TS-CATCH-UNKNOWN": true}})
	defer SetSettings(Settings{})
	for _, r := range List() {
		if r.ID == "TS-CATCH-UNKNOWN" {
			t.Fatal("disabled rule still listed")
		}
	}
}

func TestFullRuleSetIdempotence(t *testing.T) {
	in := strings.Join([]string{
		"import { Injectable, Unused } from '@nestjs/common';",
		"",
		"@Injectable()",
		"export class S {",
		"  repo: Repo;",
		"",
		"  async del(id: number): Promise<void> {",
		"    const r = await this.repo.delete(id);",
		"    if (r.affected === 0) { throw new Error('x'); }",
		"  }",
		"",
		"  async get(id: number): Promise<U> {",
		"    let u: U;",
		"    u = await this.repo.findOne({ where: { id } });",
		"    try { return u; } catch (e) {",
		"      console.error(e.stack);",
		"      throw e;",
		"    }",
		"  }",
		"}",
		"",
	}, "\n")

	once, n1 := applyAll(t, in)
	if n1 == 0 {
		t.Fatal("expected first pass to edit the sample")
	}
	twice, n2 := applyAll(t, once)
	if n2 != 0 {
		t.Fatalf("second pass made %d edits", n2)
	}
	if twice != once {
		t.Fatalf("second pass changed content:\n--- once ---\n%s\n--- twice ---\n%s", once, twice)
	}
}

func TestNonDestructiveOnCorrectInput(t *testing.T) {
	in := strings.Join([]string{
		"import { Entity, Column } from 'typeorm';",
		"",
		"@Entity()",
		"export class Tag {",
		"  id!: number;",
		"",
		"  @Column()",
		"  name!: string;",
		"}",
		"",
	}, "\n")
	out, es := applyAll(t, in)
	if out != in || es != 0 {
		t.Fatalf("already-correct file must stay byte-identical (%d edits):\n%s", es, out)
	}
}
