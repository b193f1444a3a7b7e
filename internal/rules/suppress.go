package rules

import (
	"strings"

	"github.com/EhssanAtassi/tsmend/internal/storage"
)

// Suppressed reports whether applying rule ruleID to the file at path is
// blocked by an active suppression.
func Suppressed(ruleID, path string, sups []storage.Suppression) bool {
	for _, s := range sups {
		if !strings.EqualFold(strings.TrimSpace(s.RuleID), strings.TrimSpace(ruleID)) {
			continue
		}
		if s.PathSub != "" && !strings.Contains(path, s.PathSub) {
			continue
		}
		return true
	}
	return false
}
