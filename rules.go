package turndown

import "strings"

// Context is the ephemeral rendering state threaded through the tree walk.
// It is passed by value and never stored on nodes.
type Context struct {
	ListType  string // "OL" or "UL" while inside a list, "" otherwise
	ListIndex int    // 1-based position of the current list item
	InPre     bool   // inside a preformatted block
}

// FilterFunc matches nodes that a plain tag filter cannot express.
type FilterFunc func(n *Node, ctx Context, opt *Options) bool

// ReplacementFunc renders a node given its already-rendered child content.
// Replacements are pure: they never walk the tree themselves.
type ReplacementFunc func(content string, n *Node, ctx Context, opt *Options) string

// Filter selects the nodes a Rule applies to. Exactly one of Tag, Tags or
// Func should be set; tag matching is case-insensitive.
type Filter struct {
	Tag  string
	Tags []string
	Func FilterFunc
}

func (f Filter) match(n *Node, ctx Context, opt *Options) bool {
	switch {
	case f.Tag != "":
		return strings.EqualFold(f.Tag, n.Name)
	case len(f.Tags) > 0:
		for _, t := range f.Tags {
			if strings.EqualFold(t, n.Name) {
				return true
			}
		}
		return false
	case f.Func != nil:
		return f.Func(n, ctx, opt)
	}
	return false
}

// Rule pairs a filter with the replacement producing its Markdown.
type Rule struct {
	Filter      Filter
	Replacement ReplacementFunc
}

// Rules holds the three precedence bands consulted for each element: the
// primary rules (built-ins plus user rules, newest first), the keep band
// (raw HTML passthrough) and the remove band (rendered as nothing).
type Rules struct {
	rules   []Rule
	keeps   []Rule
	removes []Rule
	opt     *Options
}

func newRules(opt *Options) *Rules {
	return &Rules{rules: defaultRules(), opt: opt}
}

// Add inserts a rule ahead of every existing primary rule.
func (rs *Rules) Add(r Rule) {
	rs.rules = append([]Rule{r}, rs.rules...)
}

// Keep renders nodes matching f as their raw HTML markup.
func (rs *Rules) Keep(f Filter) {
	rs.keeps = append(rs.keeps, Rule{
		Filter: f,
		Replacement: func(_ string, n *Node, _ Context, _ *Options) string {
			return "\n\n" + n.OuterHTML() + "\n\n"
		},
	})
}

// Remove renders nodes matching f as nothing.
func (rs *Rules) Remove(f Filter) {
	rs.removes = append(rs.removes, Rule{
		Filter: f,
		Replacement: func(string, *Node, Context, *Options) string {
			return ""
		},
	})
}

// blankRule handles nodes with no meaningful content. It is selected by
// classification, before any registered rule, so "blank" behaves as a
// reserved band rather than a rule name.
var blankRule = Rule{
	Replacement: func(_ string, n *Node, _ Context, _ *Options) string {
		if n.IsBlock() {
			return "\n\n"
		}
		return ""
	},
}

// defaultRule is the catch-all: blank-line wrap for block elements, plain
// passthrough for inline ones.
var defaultRule = Rule{
	Replacement: func(content string, n *Node, _ Context, _ *Options) string {
		if n.IsBlock() {
			return "\n\n" + content + "\n\n"
		}
		return content
	},
}

// forNode returns the single rule that renders n. Some rule always matches.
func (rs *Rules) forNode(n *Node, ctx Context) Rule {
	if n.IsBlank() {
		return blankRule
	}
	for _, band := range [][]Rule{rs.rules, rs.keeps, rs.removes} {
		for _, r := range band {
			if r.Filter.match(n, ctx, rs.opt) {
				return r
			}
		}
	}
	return defaultRule
}
