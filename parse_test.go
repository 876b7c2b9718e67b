package turndown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestParseTreeShape(t *testing.T) {
	root, err := Parse(strings.NewReader("<p>hi</p>"))
	if err != nil {
		t.Fatal(err)
	}
	if root.Type != DocumentNode {
		t.Fatalf("root type = %v, want document", root.Type)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "HTML" {
		t.Fatalf("expected single HTML child, got %v", root.Children)
	}
	html := root.Children[0]
	if len(html.Children) != 2 || html.Children[1].Name != "BODY" {
		t.Fatalf("expected HEAD and BODY, got %v", html.Children)
	}
	body := html.Children[1]
	if len(body.Children) != 1 || body.Children[0].Name != "P" {
		t.Fatalf("expected single P, got %v", body.Children)
	}
	p := body.Children[0]
	if len(p.Children) != 1 || p.Children[0].Type != TextNode || p.Children[0].Value != "hi" {
		t.Fatalf("expected text child %q, got %v", "hi", p.Children)
	}
}

func TestParseCodeFlag(t *testing.T) {
	root, err := Parse(strings.NewReader("<p><code>console.log()</code></p>"))
	if err != nil {
		t.Fatal(err)
	}
	text := findText(root)
	if text == nil {
		t.Fatal("no text node found")
	}
	if !text.IsCode {
		t.Error("inline code text should be flagged IsCode")
	}
	if text.Value != "console.log()" {
		t.Errorf("code text = %q", text.Value)
	}

	// Code inside pre is block code; the flag stays off there.
	root, err = Parse(strings.NewReader("<pre><code>x  y</code></pre>"))
	if err != nil {
		t.Fatal(err)
	}
	text = findText(root)
	if text == nil {
		t.Fatal("no text node found")
	}
	if text.IsCode {
		t.Error("pre code text should not be flagged IsCode")
	}
	if text.Value != "x  y" {
		t.Errorf("pre text collapsed: %q", text.Value)
	}
}

func findText(n *Node) *Node {
	if n.Type == TextNode {
		return n
	}
	for _, ch := range n.Children {
		if t := findText(ch); t != nil {
			return t
		}
	}
	return nil
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct{ in, want string }{
		{" and ", " and "},
		{"text\nmore", "text more"},
		{"text  \n  more", "text more"},
		{"para1\n\npara2", "para1\n\npara2"},
		{"  text  ", " text "},
		{"\n  ", ""},
		{"   ", ""},
		{"a\t\tb", "a b"},
	}
	for _, tt := range tests {
		if got := collapseWhitespace(tt.in); got != tt.want {
			t.Errorf("collapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertSelection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<div><article><p>One</p></article><article><p>Two</p></article></div>"))
	if err != nil {
		t.Fatal(err)
	}
	got := New(nil).ConvertSelection(doc.Find("article"))
	if got != "One\n\nTwo" {
		t.Errorf("got %q, want %q", got, "One\n\nTwo")
	}
}

func TestConvertWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := Convert(&buf, strings.NewReader("<p>hi</p>"), nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hi" {
		t.Errorf("got %q, want %q", buf.String(), "hi")
	}
}

func TestConvertReaderError(t *testing.T) {
	got, err := New(nil).ConvertString("<p>unterminated")
	if err != nil {
		t.Fatal(err)
	}
	if got != "unterminated" {
		t.Errorf("got %q", got)
	}
}
