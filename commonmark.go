package turndown

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// defaultRules returns the built-in rule table in evaluation order.
func defaultRules() []Rule {
	return []Rule{
		paragraphRule,
		lineBreakRule,
		headingRule,
		blockquoteRule,
		listRule,
		listItemRule,
		indentedCodeBlockRule,
		fencedCodeBlockRule,
		horizontalRuleRule,
		inlineLinkRule,
		referenceLinkRule,
		emphasisRule,
		strongRule,
		strikethroughRule,
		codeRule,
		imageRule,
		tableCellRule,
		tableRowRule,
		tableSectionRule,
		tableRule,
		commentRule,
		processingInstructionRule,
		styleRule,
		scriptRule,
		hiddenPreheaderRule,
		superscriptRule,
		subscriptRule,
	}
}

var paragraphRule = Rule{
	Filter: Filter{Tag: "p"},
	Replacement: func(content string, _ *Node, ctx Context, _ *Options) string {
		// Paragraphs synthesized inside list items stay inline.
		if ctx.ListType != "" {
			return content
		}
		return "\n\n" + content + "\n\n"
	},
}

var lineBreakRule = Rule{
	Filter: Filter{Tag: "br"},
	Replacement: func(_ string, _ *Node, _ Context, opt *Options) string {
		return opt.Br + "\n"
	},
}

var headingRule = Rule{
	Filter: Filter{Tags: []string{"h1", "h2", "h3", "h4", "h5", "h6"}},
	Replacement: func(content string, n *Node, _ Context, opt *Options) string {
		level := 1
		if len(n.Name) > 1 && n.Name[1] >= '1' && n.Name[1] <= '6' {
			level = int(n.Name[1] - '0')
		}
		if opt.HeadingStyle == HeadingSetext && level < 3 {
			marker := "="
			if level == 2 {
				marker = "-"
			}
			underline := strings.Repeat(marker, runewidth.StringWidth(content))
			return "\n\n" + content + "\n" + underline + "\n\n"
		}
		return "\n\n" + strings.Repeat("#", level) + " " + content + "\n\n"
	},
}

var blockquoteRule = Rule{
	Filter: Filter{Tag: "blockquote"},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		trimmed := strings.Trim(content, "\n")
		var quoted []string
		if trimmed != "" {
			for _, line := range strings.Split(trimmed, "\n") {
				quoted = append(quoted, "> "+line)
			}
		}
		return "\n\n" + strings.Join(quoted, "\n") + "\n\n"
	},
}

var listRule = Rule{
	Filter: Filter{Tags: []string{"ul", "ol"}},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		return "\n\n" + content + "\n\n"
	},
}

var listItemRule = Rule{
	Filter: Filter{Tag: "li"},
	Replacement: func(content string, _ *Node, ctx Context, opt *Options) string {
		content = strings.TrimRightFunc(content, unicode.IsSpace)
		if ctx.ListType == "OL" && ctx.ListIndex > 0 {
			return fmt.Sprintf("%d.  %s\n", ctx.ListIndex, content)
		}
		return opt.BulletListMarker + " " + content + "\n"
	},
}

var indentedCodeBlockRule = Rule{
	Filter: Filter{Func: func(n *Node, _ Context, opt *Options) bool {
		return opt.CodeBlockStyle == CodeBlockIndented && n.Name == "PRE"
	}},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		return "\n\n" + content + "\n\n"
	},
}

var fencedCodeBlockRule = Rule{
	Filter: Filter{Func: func(n *Node, _ Context, opt *Options) bool {
		return opt.CodeBlockStyle == CodeBlockFenced && n.Name == "PRE"
	}},
	Replacement: func(content string, _ *Node, _ Context, opt *Options) string {
		marker := '`'
		if opt.Fence != "" {
			marker = []rune(opt.Fence)[0]
		}
		fence := strings.Repeat(string(marker), 3)
		content = strings.TrimRightFunc(content, unicode.IsSpace)
		return "\n\n" + fence + "\n" + content + "\n" + fence + "\n\n"
	},
}

var horizontalRuleRule = Rule{
	Filter: Filter{Tag: "hr"},
	Replacement: func(_ string, _ *Node, _ Context, opt *Options) string {
		return "\n\n" + opt.HorizontalRule + "\n\n"
	},
}

var inlineLinkRule = Rule{
	Filter: Filter{Func: func(n *Node, _ Context, opt *Options) bool {
		return opt.LinkStyle == LinkInlined && n.Name == "A" && n.hasAttribute("href")
	}},
	Replacement: func(content string, n *Node, _ Context, _ *Options) string {
		var parts []string
		for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				parts = append(parts, line)
			}
		}
		text := strings.Join(parts, " ")
		// A nested markdown link passes through untouched.
		if strings.HasPrefix(text, "[") && strings.Contains(text, "](") {
			return text
		}
		href := strings.NewReplacer("(", `\(`, ")", `\)`).Replace(n.Attribute("href"))
		title := ""
		if t := n.Attribute("title"); t != "" {
			title = ` "` + strings.ReplaceAll(t, `"`, `\"`) + `"`
		}
		return "[" + text + "](" + href + title + ")"
	},
}

var referenceLinkRule = Rule{
	Filter: Filter{Func: func(n *Node, _ Context, opt *Options) bool {
		return opt.LinkStyle == LinkReferenced && n.Name == "A" && n.hasAttribute("href")
	}},
	Replacement: func(content string, _ *Node, _ Context, opt *Options) string {
		switch opt.LinkReferenceStyle {
		case LinkReferenceCollapsed:
			return content + "[]"
		case LinkReferenceShortcut:
			return "[" + content + "]"
		}
		return "[" + content + "][1]"
	},
}

var emphasisRule = Rule{
	Filter: Filter{Tags: []string{"em", "i"}},
	Replacement: func(content string, _ *Node, _ Context, opt *Options) string {
		if strings.TrimSpace(content) == "" {
			return ""
		}
		return opt.EmDelimiter + content + opt.EmDelimiter
	},
}

var strongRule = Rule{
	Filter: Filter{Tags: []string{"strong", "b"}},
	Replacement: func(content string, _ *Node, _ Context, opt *Options) string {
		if strings.TrimSpace(content) == "" {
			return ""
		}
		return opt.StrongDelimiter + content + opt.StrongDelimiter
	},
}

var strikethroughRule = Rule{
	Filter: Filter{Tags: []string{"del", "s", "strike"}},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		if strings.TrimSpace(content) == "" {
			return ""
		}
		return "~~" + content + "~~"
	},
}

var codeRule = Rule{
	Filter: Filter{Func: func(n *Node, ctx Context, _ *Options) bool {
		return n.Name == "CODE" && !ctx.InPre
	}},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		if content == "" {
			return ""
		}
		content = strings.ReplaceAll(content, "\r\n", " ")
		content = strings.ReplaceAll(content, "\r", " ")
		if strings.Contains(content, "`") {
			return "`` " + content + " ``"
		}
		return "`" + content + "`"
	},
}

var imageRule = Rule{
	Filter: Filter{Tag: "img"},
	Replacement: func(_ string, n *Node, _ Context, opt *Options) string {
		alt := n.Attribute("alt")
		src := n.Attribute("src")

		// 1x1 images without alt text are tracking pixels, always dropped.
		if strings.TrimSpace(alt) == "" && n.Attribute("width") == "1" && n.Attribute("height") == "1" {
			return ""
		}
		if opt.StripTrackingImages &&
			isTrackingImage(src, alt, opt.TrackingImagePattern, opt.StripImagesWithoutAlt) {
			return ""
		}
		if src == "" {
			return ""
		}
		title := ""
		if t := n.Attribute("title"); t != "" {
			title = ` "` + t + `"`
		}
		return "![" + alt + "](" + src + title + ")"
	},
}

// isTrackingImage applies the tracking-pixel heuristics. An absent pattern
// simply skips the source check.
func isTrackingImage(src, alt string, pattern *regexp.Regexp, stripWithoutAlt bool) bool {
	if stripWithoutAlt && strings.TrimSpace(alt) == "" {
		return true
	}
	return pattern != nil && pattern.MatchString(src)
}

var commentRule = Rule{
	Filter: Filter{Func: func(n *Node, _ Context, _ *Options) bool {
		return n.Type == CommentNode
	}},
	Replacement: func(string, *Node, Context, *Options) string { return "" },
}

var processingInstructionRule = Rule{
	Filter: Filter{Func: func(n *Node, _ Context, _ *Options) bool {
		return n.Type == ProcessingInstructionNode
	}},
	Replacement: func(string, *Node, Context, *Options) string { return "" },
}

var styleRule = Rule{
	Filter:      Filter{Tag: "style"},
	Replacement: func(string, *Node, Context, *Options) string { return "" },
}

var scriptRule = Rule{
	Filter:      Filter{Tag: "script"},
	Replacement: func(string, *Node, Context, *Options) string { return "" },
}

// hiddenPreheaderRule keeps email preheader text inline so invisible or
// zero-width characters stay on one line instead of getting block wrapping.
var hiddenPreheaderRule = Rule{
	Filter: Filter{Func: func(n *Node, _ Context, _ *Options) bool {
		if n.Name != "DIV" {
			return false
		}
		if n.hasAttribute("data-email-preheader") {
			return true
		}
		style := n.Attribute("style")
		class := n.Attribute("class")
		return strings.Contains(style, "visibility:hidden") &&
			strings.Contains(style, "height:0") &&
			strings.Contains(class, "h-0") &&
			strings.Contains(class, "opacity-0")
	}},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		return strings.TrimSpace(content)
	},
}

var superscriptRule = Rule{
	Filter: Filter{Tag: "sup"},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		content = strings.TrimSpace(content)
		if content == "" {
			return "<sup></sup>"
		}
		// Trailing space keeps the raw tag from merging with following text.
		return "<sup>" + content + "</sup> "
	},
}

var subscriptRule = Rule{
	Filter: Filter{Tag: "sub"},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		content = strings.TrimSpace(content)
		if content == "" {
			return "<sub></sub>"
		}
		return "<sub>" + content + "</sub> "
	},
}
