package rulesdsl

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/EhssanAtassi/tsmend/internal/ir"
	"github.com/EhssanAtassi/tsmend/internal/rules"
)

// A rules pack lets a project register extra rewrite rules without code.
// Every rule needs a skip_if guard (or a replacement that cannot re-match)
// so the overall pass stays idempotent.
type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID      string `yaml:"id"`
	Summary string `yaml:"summary"`
	Match   string `yaml:"match"`   // regex over file content
	Replace string `yaml:"replace"` // replacement template ($1 groups allowed)
	SkipIf  string `yaml:"skip_if"` // optional guard: rule is silent when this matches
}

type compiled struct {
	rule     dslRule
	reMatch  *regexp.Regexp
	reSkipIf *regexp.Regexp
}

// Pack rules run after the built-ins, in pack order.
const packOrderBase = 100

func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rules pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for i, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		registerCompiled(*cr, packOrderBase+i)
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Match == "" {
		return nil, fmt.Errorf("missing required fields (id/match)")
	}
	c := &compiled{rule: r}
	re, err := regexp.Compile(r.Match)
	if err != nil {
		return nil, fmt.Errorf("match regex: %w", err)
	}
	c.reMatch = re
	if r.SkipIf != "" {
		re, err := regexp.Compile(r.SkipIf)
		if err != nil {
			return nil, fmt.Errorf("skip_if regex: %w", err)
		}
		c.reSkipIf = re
	}
	return c, nil
}

func registerCompiled(c compiled, order int) {
	rules.Register(rules.Rule{
		ID:      c.rule.ID,
		Summary: c.rule.Summary,
		Order:   order,
		Apply: func(content string) (string, []ir.Edit) {
			if c.reSkipIf != nil && c.reSkipIf.MatchString(content) {
				return content, nil
			}
			n := len(c.reMatch.FindAllStringIndex(content, -1))
			if n == 0 {
				return content, nil
			}
			out := c.reMatch.ReplaceAllString(content, c.rule.Replace)
			if out == content {
				return content, nil
			}
			edits := make([]ir.Edit, 0, n)
			for i := 0; i < n; i++ {
				edits = append(edits, ir.Edit{RuleID: c.rule.ID, Detail: c.rule.Summary})
			}
			return out, edits
		},
	})
}
