package storage

import (
	"database/sql"
	"time"
)

// ListRuns returns a lightweight list of runs with edit counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.root, r.ir_version, r.scanned, r.fixed,
		       (SELECT COUNT(1) FROM edits e WHERE e.run_id = r.id) AS edits
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Root, &rr.IRVersion, &rr.Scanned, &rr.Fixed, &rr.Edits); err != nil {
			return nil, err
		}
		rr.StartedAt = parseTime(startedAtStr)
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListEdits returns the recorded rewrites for a run, optionally filtered by rule.
func (db *DB) ListEdits(runID, ruleID string) ([]EditRow, error) {
	q := `SELECT path, rule_id, detail FROM edits WHERE run_id = ?`
	args := []any{runID}
	if ruleID != "" {
		q += ` AND rule_id = ?`
		args = append(args, ruleID)
	}
	q += ` ORDER BY path, rule_id`
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EditRow
	for rows.Next() {
		var e EditRow
		var detail sql.NullString
		if err := rows.Scan(&e.Path, &e.RuleID, &detail); err != nil {
			return nil, err
		}
		e.Detail = detail.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// HasRun reports whether a run exists.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
