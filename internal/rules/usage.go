package rules

import "regexp"

// Used reports whether ident appears in text as a standalone word. This is the
// whole of the usage analysis backing import pruning: a word-boundary match
// anywhere in the remainder of the file counts as a reference.
func Used(ident, text string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\b`)
	return re.MatchString(text)
}
