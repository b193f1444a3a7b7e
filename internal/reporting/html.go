package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Edit counts per rule
	perRule := map[string]int{}
	for _, fr := range run.Files {
		for _, e := range fr.Edits {
			perRule[e.RuleID]++
		}
	}
	ruleIDs := make([]string, 0, len(perRule))
	for id := range perRule {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>tsmend report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Root: <span class='mono'>%s</span></p>", html.EscapeString(run.Root))
	fmt.Fprintf(f, "<p>Scanned: %d &nbsp; Fixed: %d &nbsp; Errors: %d</p>",
		run.Summary.Scanned, run.Summary.Fixed, run.Summary.Errors)
	if run.Context.DryRun {
		fmt.Fprint(f, "<p class='dim'>Dry run: no files were written.</p>")
	}
	if n := len(run.Context.DisabledRules); n > 0 {
		fmt.Fprintf(f, "<p class='dim'>Disabled rules: %d</p>", n)
	}
	if run.Summary.Suppressed > 0 {
		fmt.Fprintf(f, "<p class='dim'>Suppressed rule applications: %d</p>", run.Summary.Suppressed)
	}

	// Edits by rule
	if len(ruleIDs) > 0 {
		fmt.Fprint(f, "<h2>Edits by Rule</h2><table><tr><th>Rule</th><th>Edits</th></tr>")
		for _, id := range ruleIDs {
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td></tr>", html.EscapeString(id), perRule[id])
		}
		fmt.Fprint(f, "</table>")
	}

	// Fixed files
	fmt.Fprint(f, "<h2>Files</h2>")
	any := false
	for _, fr := range run.Files {
		if !fr.Fixed && fr.Error == "" {
			continue
		}
		if !any {
			fmt.Fprint(f, "<table><tr><th>File</th><th>Edits</th><th>Error</th></tr>")
			any = true
		}
		fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(fr.Path), len(fr.Edits), html.EscapeString(fr.Error))
	}
	if any {
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<p class='dim'>No files needed fixing.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
