package turndown

import (
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Convert reads HTML from r and writes the Markdown rendition to w. A nil
// opt selects DefaultOptions.
func Convert(w io.Writer, r io.Reader, opt *Options) error {
	root, err := Parse(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, New(opt).Convert(root))
	return err
}

// Parse builds a conversion tree from HTML markup. Text outside code and
// pre contexts has its whitespace collapsed the way HTML rendering would;
// text inside an inline code element is marked IsCode and kept verbatim.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromHTML(doc, false, false), nil
}

// ConvertReader parses HTML from r and converts it.
func (c *Converter) ConvertReader(r io.Reader) (string, error) {
	root, err := Parse(r)
	if err != nil {
		return "", err
	}
	return c.Convert(root), nil
}

// ConvertString converts an HTML string. An empty string yields "".
func (c *Converter) ConvertString(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return c.ConvertReader(strings.NewReader(s))
}

// ConvertSelection converts the nodes of a goquery selection, for callers
// that already hold a parsed document.
func (c *Converter) ConvertSelection(sel *goquery.Selection) string {
	root := NewDocument()
	for _, hn := range sel.Nodes {
		root.AppendChild(fromHTML(hn, false, false))
	}
	return c.Convert(root)
}

func fromHTML(hn *html.Node, inCode, inPre bool) *Node {
	switch hn.Type {
	case html.DocumentNode:
		doc := NewDocument()
		for ch := hn.FirstChild; ch != nil; ch = ch.NextSibling {
			doc.AppendChild(fromHTML(ch, false, false))
		}
		return doc
	case html.ElementNode:
		n := NewElement(hn.Data)
		for _, a := range hn.Attr {
			n.SetAttribute(a.Key, a.Val)
		}
		pre := inPre || strings.EqualFold(hn.Data, "pre")
		code := strings.EqualFold(hn.Data, "code") && !pre
		for ch := hn.FirstChild; ch != nil; ch = ch.NextSibling {
			n.AppendChild(fromHTML(ch, code || inCode, pre))
		}
		return n
	case html.TextNode:
		text := hn.Data
		if !inCode && !inPre {
			text = collapseWhitespace(text)
		}
		t := NewText(text)
		t.IsCode = inCode
		return t
	case html.CommentNode:
		return NewComment(hn.Data)
	}
	// Doctypes and anything else render as nothing.
	return NewDocument()
}

// collapseWhitespace reduces whitespace runs to single spaces while keeping
// blank lines (a newline pair) intact, matching how browsers render
// inter-element whitespace. Whitespace-only input collapses to "".
func collapseWhitespace(s string) string {
	runes := []rune(s)
	var out []rune
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\n':
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) && runes[j] != '\n' {
				j++
			}
			if j < len(runes) && runes[j] == '\n' {
				out = append(out, '\n', '\n')
				i = j + 1
			} else {
				if len(out) > 0 && out[len(out)-1] != ' ' {
					out = append(out, ' ')
				}
				i++
				for i < len(runes) && unicode.IsSpace(runes[i]) && runes[i] != '\n' {
					i++
				}
			}
		case unicode.IsSpace(r):
			if len(out) == 0 || (out[len(out)-1] != ' ' && out[len(out)-1] != '\n') {
				out = append(out, ' ')
			}
			i++
			for i < len(runes) && unicode.IsSpace(runes[i]) && runes[i] != '\n' {
				i++
			}
		default:
			out = append(out, r)
			i++
		}
	}
	res := string(out)
	if strings.TrimSpace(res) == "" {
		return ""
	}
	return res
}
