package ir

import "time"

const Version = "1.0"

// Run is one full fix pass over a source tree.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Root      string    `json:"root,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context Context      `json:"context"`
	Files   []FileResult `json:"files"`
	Summary Summary      `json:"summary"`
}

type Context struct {
	DryRun        bool     `json:"dry_run,omitempty"`
	DisabledRules []string `json:"disabled_rules,omitempty"`
	RulesPack     string   `json:"rules_pack,omitempty"`
	ExcludedDirs  []string `json:"excluded_dirs,omitempty"`
}

// FileResult records what happened to one scanned file.
type FileResult struct {
	Path  string `json:"path"`
	Fixed bool   `json:"fixed"`
	Edits []Edit `json:"edits,omitempty"`
	Error string `json:"error,omitempty"`
}

// Edit is one rewrite a rule performed within a file.
type Edit struct {
	RuleID string `json:"rule_id"`
	Detail string `json:"detail,omitempty"`
}

type Summary struct {
	Scanned    int `json:"scanned"`
	Fixed      int `json:"fixed"`
	Errors     int `json:"errors,omitempty"`
	Suppressed int `json:"suppressed,omitempty"`
}
