package turndown

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// NodeType identifies the kind of a Node.
type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
	ProcessingInstructionNode
)

// Node is the minimal DOM-like tree the converter works on. Any producer of
// this shape can feed the converter; Parse builds one from HTML markup.
type Node struct {
	Type     NodeType
	Name     string // uppercase tag name, or "#text", "#comment", "#document"
	Value    string // payload of text and comment nodes
	Children []*Node
	Attr     map[string]string
	IsCode   bool // text originates inside an inline code element
}

// NewElement returns an element node with the given tag name.
func NewElement(name string) *Node {
	return &Node{
		Type: ElementNode,
		Name: strings.ToUpper(name),
		Attr: map[string]string{},
	}
}

// NewText returns a text node.
func NewText(value string) *Node {
	return &Node{Type: TextNode, Name: "#text", Value: value}
}

// NewDocument returns an empty document node.
func NewDocument() *Node {
	return &Node{Type: DocumentNode, Name: "#document"}
}

// NewComment returns a comment node.
func NewComment(value string) *Node {
	return &Node{Type: CommentNode, Name: "#comment", Value: value}
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Attribute returns the value of the named attribute, or "" when absent.
func (n *Node) Attribute(key string) string {
	return n.Attr[key]
}

// SetAttribute sets an attribute value.
func (n *Node) SetAttribute(key, value string) {
	if n.Attr == nil {
		n.Attr = map[string]string{}
	}
	n.Attr[key] = value
}

func (n *Node) hasAttribute(key string) bool {
	_, ok := n.Attr[key]
	return ok
}

var blockElements = map[string]bool{
	"ADDRESS": true, "ARTICLE": true, "ASIDE": true, "AUDIO": true,
	"BLOCKQUOTE": true, "BODY": true, "CANVAS": true, "CENTER": true,
	"DD": true, "DIR": true, "DIV": true, "DL": true, "DT": true,
	"FIELDSET": true, "FIGCAPTION": true, "FIGURE": true, "FOOTER": true,
	"FORM": true, "FRAMESET": true, "H1": true, "H2": true, "H3": true,
	"H4": true, "H5": true, "H6": true, "HEADER": true, "HGROUP": true,
	"HR": true, "HTML": true, "ISINDEX": true, "LI": true, "MAIN": true,
	"MENU": true, "NAV": true, "NOFRAMES": true, "NOSCRIPT": true,
	"OL": true, "OUTPUT": true, "P": true, "PRE": true, "SECTION": true,
	"TABLE": true, "TBODY": true, "TD": true, "TFOOT": true, "TH": true,
	"THEAD": true, "TR": true, "UL": true,
}

var voidElements = map[string]bool{
	"AREA": true, "BASE": true, "BR": true, "COL": true, "COMMAND": true,
	"EMBED": true, "HR": true, "IMG": true, "INPUT": true, "KEYGEN": true,
	"LINK": true, "META": true, "PARAM": true, "SOURCE": true,
	"TRACK": true, "WBR": true,
}

var meaningfulWhenBlankElements = map[string]bool{
	"A": true, "TABLE": true, "THEAD": true, "TBODY": true, "TFOOT": true,
	"TH": true, "TD": true, "IFRAME": true, "SCRIPT": true, "AUDIO": true,
	"VIDEO": true,
}

// IsBlock reports whether n is a block-level element.
func (n *Node) IsBlock() bool {
	return blockElements[strings.ToUpper(n.Name)]
}

// IsVoid reports whether n is a void (self-closing) element.
func (n *Node) IsVoid() bool {
	return voidElements[strings.ToUpper(n.Name)]
}

// IsMeaningfulWhenBlank reports whether n renders even with no content.
func (n *Node) IsMeaningfulWhenBlank() bool {
	return meaningfulWhenBlankElements[strings.ToUpper(n.Name)]
}

// meaningfulVoid is a void element that still renders something, such as an
// image with a source or a line break.
func (n *Node) meaningfulVoid() bool {
	return n.hasAttribute("src") || n.hasAttribute("data") ||
		n.Name == "BR" || n.Name == "HR"
}

// IsBlank reports whether n has no meaningful rendered content. A blank node
// may still contain whitespace-only text or sourceless void children.
func (n *Node) IsBlank() bool {
	if n.IsMeaningfulWhenBlank() {
		return false
	}
	if n.IsVoid() && n.meaningfulVoid() {
		return false
	}

	hasText := false
	hasMeaningfulVoidChild := false
	onlyEmptyVoidChildren := true
	for _, c := range n.Children {
		if c.Type == TextNode && strings.TrimSpace(c.Value) != "" {
			hasText = true
		}
		isVoidElem := c.Type == ElementNode && c.IsVoid()
		if isVoidElem && c.meaningfulVoid() {
			hasMeaningfulVoidChild = true
		}
		if !isVoidElem || c.meaningfulVoid() {
			onlyEmptyVoidChildren = false
		}
	}

	return !hasText && !hasMeaningfulVoidChild &&
		(onlyEmptyVoidChildren || len(n.Children) == 0)
}

// flankingWhitespace returns the whitespace prefix of the first text child
// and the whitespace suffix of the last text child. The engine relocates it
// outside any delimiters a rule adds.
func (n *Node) flankingWhitespace() (leading, trailing string) {
	if n.Type != ElementNode || len(n.Children) == 0 {
		return "", ""
	}
	if first := n.Children[0]; first.Type == TextNode {
		t := strings.TrimLeftFunc(first.Value, unicode.IsSpace)
		leading = first.Value[:len(first.Value)-len(t)]
	}
	if last := n.Children[len(n.Children)-1]; last.Type == TextNode {
		t := strings.TrimRightFunc(last.Value, unicode.IsSpace)
		trailing = last.Value[len(t):]
	}
	return leading, trailing
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode:
		return n.Value
	case ElementNode, DocumentNode:
		var sb strings.Builder
		for _, c := range n.Children {
			sb.WriteString(c.TextContent())
		}
		return sb.String()
	}
	return ""
}

// OuterHTML renders n back to HTML markup. Attributes are emitted in sorted
// key order so the output is deterministic.
func (n *Node) OuterHTML() string {
	switch n.Type {
	case ElementNode:
		var sb strings.Builder
		sb.WriteString("<" + strings.ToLower(n.Name))
		keys := make([]string, 0, len(n.Attr))
		for k := range n.Attr {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%q", k, n.Attr[k])
		}
		sb.WriteString(">")
		for _, c := range n.Children {
			sb.WriteString(c.OuterHTML())
		}
		if !n.IsVoid() {
			sb.WriteString("</" + strings.ToLower(n.Name) + ">")
		}
		return sb.String()
	case TextNode:
		return n.Value
	case CommentNode:
		return "<!--" + n.Value + "-->"
	case DocumentNode:
		var sb strings.Builder
		for _, c := range n.Children {
			sb.WriteString(c.OuterHTML())
		}
		return sb.String()
	}
	return ""
}
