// Package turndown converts HTML documents to Markdown.
//
// The converter consumes a tree of Node values, renders each element
// through a table of replacement rules and merges the fragments with
// Markdown's blank-line semantics. Parse builds such a tree from HTML
// markup; any other producer of the same shape works too.
package turndown

import (
	"regexp"
	"strings"
	"unicode"
)

// Converter turns a parsed HTML tree into Markdown text.
type Converter struct {
	opt   *Options
	rules *Rules
}

// New returns a Converter with the given options. A nil opt selects
// DefaultOptions.
func New(opt *Options) *Converter {
	if opt == nil {
		opt = DefaultOptions()
	}
	return &Converter{opt: opt, rules: newRules(opt)}
}

// AddRule registers a custom rule ahead of every built-in rule.
func (c *Converter) AddRule(r Rule) { c.rules.Add(r) }

// Keep renders nodes matching f as their raw HTML markup.
func (c *Converter) Keep(f Filter) { c.rules.Keep(f) }

// Remove drops nodes matching f from the output.
func (c *Converter) Remove(f Filter) { c.rules.Remove(f) }

// Convert renders the tree rooted at root. An empty tree yields "".
func (c *Converter) Convert(root *Node) string {
	if root == nil {
		return ""
	}
	return postProcess(c.process(root, Context{}))
}

// process renders the children of n under the given context and joins the
// fragments. Lists open a fresh list context for their own children;
// pre blocks mark everything below them.
func (c *Converter) process(n *Node, ctx Context) string {
	if n.Name == "OL" || n.Name == "UL" {
		ctx = Context{ListType: n.Name, InPre: ctx.InPre}
	}
	if n.Name == "PRE" {
		ctx.InPre = true
	}

	var out string
	index := 0
	for _, child := range n.Children {
		var rep string
		switch child.Type {
		case TextNode:
			if child.IsCode {
				rep = child.Value
			} else {
				rep = escape(child.Value)
			}
		case ElementNode:
			cctx := ctx
			if child.Name == "LI" && ctx.ListType != "" {
				index++
				cctx.ListIndex = index
			}
			rep = c.replacement(child, cctx)
		}
		out = join(out, rep)
	}
	return out
}

// replacement renders a single element: children first, then the matching
// rule over the rendered content. Flanking whitespace is stripped from the
// content of inline elements and re-attached outside the rule's output so
// delimiters sit directly against non-space text.
func (c *Converter) replacement(n *Node, ctx Context) string {
	if n.Name == "PRE" {
		ctx.InPre = true
	}
	content := c.process(n, ctx)

	leading, trailing := n.flankingWhitespace()
	isCell := n.Name == "TD" || n.Name == "TH"

	if n.IsBlock() {
		content = strings.TrimLeftFunc(content, unicode.IsSpace)
	}
	useLeading, useTrailing := "", ""
	if !isCell && !n.IsBlock() {
		useLeading, useTrailing = leading, trailing
	}
	if leading != "" || trailing != "" {
		content = strings.TrimSpace(content)
	}

	rule := c.rules.forNode(n, ctx)
	return useLeading + rule.Replacement(content, n, ctx, c.opt) + useTrailing
}

// join concatenates two rendered fragments. The separator is derived from
// the larger of the trailing newline run on the left and the leading run on
// the right, capped at one blank line.
func join(a, b string) string {
	s1 := strings.TrimRight(a, "\n")
	s2 := strings.TrimLeft(b, "\n")
	nls := len(a) - len(s1)
	if n := len(b) - len(s2); n > nls {
		nls = n
	}
	switch {
	case nls >= 2:
		return s1 + "\n\n" + s2
	case nls == 1:
		return s1 + "\n" + s2
	}
	return s1 + s2
}

// Ordered substitutions for Markdown-significant characters. Backslash must
// come first so later insertions are not escaped twice.
var escapePatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\\`), `\\`},
	{regexp.MustCompile(`\*`), `\*`},
	{regexp.MustCompile(`^-`), `\-`},
	{regexp.MustCompile(`^\+ `), `\+ `},
	{regexp.MustCompile(`^(=+)`), `\$1`},
	{regexp.MustCompile(`^(#{1,6}) `), `\$1 `},
	{regexp.MustCompile("`"), "\\`"},
	{regexp.MustCompile(`^~~~`), `\~~~`},
	{regexp.MustCompile(`\[`), `\[`},
	{regexp.MustCompile(`\]`), `\]`},
	{regexp.MustCompile(`^>`), `\>`},
	{regexp.MustCompile(`_`), `\_`},
	{regexp.MustCompile(`^(\d+)\. `), `$1\. `},
}

// escape backslash-escapes text that would otherwise read as Markdown.
func escape(s string) string {
	for _, p := range escapePatterns {
		s = p.re.ReplaceAllString(s, p.repl)
	}
	return s
}

// postProcess collapses runs of three or more newlines to one blank line,
// then trims the outer edges of the result.
func postProcess(s string) string {
	s = collapseNewlines(s)
	s = strings.TrimLeft(s, "\t\r\n")
	return strings.TrimRight(s, "\t\r\n ")
}

func collapseNewlines(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	run := 0
	for _, r := range s {
		switch r {
		case '\n':
			run++
			if run <= 2 {
				sb.WriteRune(r)
			}
		case ' ', '\t', '\r':
			sb.WriteRune(r)
		default:
			run = 0
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
