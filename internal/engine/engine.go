package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/EhssanAtassi/tsmend/internal/ir"
	"github.com/EhssanAtassi/tsmend/internal/rules"
	"github.com/EhssanAtassi/tsmend/internal/storage"
	"github.com/EhssanAtassi/tsmend/internal/walker"
)

// Engine runs the full rule set over every file the walker finds, writing
// changed files back in place. Files are processed sequentially; the engine
// assumes exclusive access to the tree for the duration of a run.
type Engine struct {
	Walker       *walker.Walker
	Suppressions []storage.Suppression
	DryRun       bool
	DiffOut      io.Writer // unified diffs in dry-run mode; nil discards
}

// Run processes the tree. Per-file errors are logged and recorded on the
// FileResult; only a failure to read the root itself is returned as an error.
// ctx is checked between files, never mid-file.
func (e *Engine) Run(ctx context.Context) (ir.Run, error) {
	run := ir.Run{IRVersion: ir.Version, Root: e.Walker.Root}
	run.Context.DryRun = e.DryRun
	run.Context.ExcludedDirs = e.Walker.ExcludeDirs

	files, err := e.Walker.Files()
	if err != nil {
		return run, fmt.Errorf("walk %s: %w", e.Walker.Root, err)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		res, suppressed := e.processFile(path)
		run.Files = append(run.Files, res)
		run.Summary.Scanned++
		run.Summary.Suppressed += suppressed
		if res.Fixed {
			run.Summary.Fixed++
		}
		if res.Error != "" {
			run.Summary.Errors++
		}
	}
	return run, nil
}

func (e *Engine) processFile(path string) (ir.FileResult, int) {
	res := ir.FileResult{Path: path}

	b, err := os.ReadFile(path)
	if err != nil {
		slog.Error("read failed", "path", path, "err", err)
		res.Error = err.Error()
		return res, 0
	}
	content := string(b)

	next, edits, suppressed, err := e.applyRules(path, content)
	if err != nil {
		slog.Error("rules failed", "path", path, "err", err)
		res.Error = err.Error()
		return res, suppressed
	}
	res.Edits = edits

	if len(edits) == 0 || next == content {
		return res, suppressed
	}
	if e.DryRun {
		e.writeDiff(path, content, next)
		res.Fixed = true
		return res, suppressed
	}
	if err := os.WriteFile(path, []byte(next), 0o644); err != nil {
		slog.Error("write failed", "path", path, "err", err)
		res.Error = err.Error()
		return res, suppressed
	}
	res.Fixed = true
	slog.Debug("fixed", "path", path, "edits", len(edits))
	return res, suppressed
}

// applyRules threads the content through every enabled rule in order. A panic
// inside a rule (regex engines over arbitrary input) is converted to an error
// so one malformed file cannot abort the run.
func (e *Engine) applyRules(path, content string) (out string, edits []ir.Edit, suppressed int, err error) {
	out = content
	var cur string
	defer func() {
		if r := recover(); r != nil {
			out, edits = content, nil
			err = fmt.Errorf("rule %s panicked: %v", cur, r)
		}
	}()
	for _, r := range rules.List() {
		if rules.Suppressed(r.ID, path, e.Suppressions) {
			suppressed++
			continue
		}
		cur = r.ID
		next, es := r.Apply(out)
		out = next
		edits = append(edits, es...)
	}
	return out, edits, suppressed, nil
}

func (e *Engine) writeDiff(path, before, after string) {
	if e.DiffOut == nil {
		return
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (fixed)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		slog.Warn("diff render failed", "path", path, "err", err)
		return
	}
	fmt.Fprint(e.DiffOut, text)
}
