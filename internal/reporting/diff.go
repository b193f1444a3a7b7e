package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/EhssanAtassi/tsmend/internal/ir"
)

type diffPayload struct {
	BaseID  string      `json:"base_id"`
	HeadID  string      `json:"head_id"`
	Summary diffSummary `json:"summary"`
	New     []diffEdit  `json:"new"`
	Removed []diffEdit  `json:"removed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	RemovedCount int `json:"removed"`
	BaseFixed    int `json:"base_fixed"`
	HeadFixed    int `json:"head_fixed"`
}

type diffEdit struct {
	Path   string `json:"path"`
	RuleID string `json:"rule_id"`
	Detail string `json:"detail,omitempty"`
}

// WriteDiffJSON compares the edits two runs made. An edit present only in head
// means the tree regressed (or the rule set grew) between runs; one present
// only in base was fixed for good.
func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	bm := editKeys(base)
	hm := editKeys(head)

	var added []diffEdit
	var removed []diffEdit
	for k, e := range hm {
		if _, ok := bm[k]; !ok {
			added = append(added, e)
		}
	}
	for k, e := range bm {
		if _, ok := hm[k]; !ok {
			removed = append(removed, e)
		}
	}

	// stable sort
	byKey := func(s []diffEdit) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].Path != s[j].Path {
				return s[i].Path < s[j].Path
			}
			if s[i].RuleID != s[j].RuleID {
				return s[i].RuleID < s[j].RuleID
			}
			return s[i].Detail < s[j].Detail
		})
	}
	byKey(added)
	byKey(removed)

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			RemovedCount: len(removed),
			BaseFixed:    base.Summary.Fixed,
			HeadFixed:    head.Summary.Fixed,
		},
		New:     added,
		Removed: removed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func editKeys(run *ir.Run) map[string]diffEdit {
	m := map[string]diffEdit{}
	for _, fr := range run.Files {
		for _, e := range fr.Edits {
			k := strings.Join([]string{fr.Path, e.RuleID, e.Detail}, "|")
			m[k] = diffEdit{Path: fr.Path, RuleID: e.RuleID, Detail: e.Detail}
		}
	}
	return m
}
