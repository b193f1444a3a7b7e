package rules

import "github.com/EhssanAtassi/tsmend/internal/ir"

// Rule is a single textual transformation stage executed over one file's
// content. Rules are stateless; Apply returns the (possibly unchanged) new
// content plus one Edit per rewrite it performed.
type Rule struct {
	ID      string
	Summary string
	// Order fixes the application sequence; later rules see earlier output.
	Order int
	Apply func(content string) (string, []ir.Edit)
}
