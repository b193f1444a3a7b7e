package storage

import "time"

// RunRow is a lightweight listing row for /runs.
type RunRow struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Root      string    `json:"root,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`
	Scanned   int       `json:"scanned"`
	Fixed     int       `json:"fixed"`
	Edits     int       `json:"edits"`
}

// EditRow is one recorded rewrite, for per-run listings.
type EditRow struct {
	Path   string `json:"path"`
	RuleID string `json:"rule_id"`
	Detail string `json:"detail,omitempty"`
}
