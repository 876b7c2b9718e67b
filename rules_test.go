package turndown

import (
	"strings"
	"testing"
)

func TestFilterMatch(t *testing.T) {
	opt := DefaultOptions()
	div := NewElement("div")

	if !(Filter{Tag: "div"}).match(div, Context{}, opt) {
		t.Error("tag filter should match")
	}
	if !(Filter{Tag: "DIV"}).match(div, Context{}, opt) {
		t.Error("tag matching should be case-insensitive")
	}
	if (Filter{Tag: "span"}).match(div, Context{}, opt) {
		t.Error("tag filter should not match other tags")
	}
	if !(Filter{Tags: []string{"p", "div"}}).match(div, Context{}, opt) {
		t.Error("tag set filter should match")
	}
	fn := Filter{Func: func(n *Node, _ Context, _ *Options) bool {
		return strings.HasPrefix(n.Name, "D")
	}}
	if !fn.match(div, Context{}, opt) {
		t.Error("func filter should match")
	}
}

func TestCustomRulePrecedence(t *testing.T) {
	conv := New(nil)
	conv.AddRule(Rule{
		Filter: Filter{Tag: "em"},
		Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
			return "<<" + content + ">>"
		},
	})
	got, err := conv.ConvertString("<p><em>x</em></p>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "<<x>>" {
		t.Errorf("got %q, want %q", got, "<<x>>")
	}
}

func TestKeep(t *testing.T) {
	conv := New(nil)
	conv.Keep(Filter{Tag: "video"})
	got, err := conv.ConvertString(`<p>x</p><video controls></video>`)
	if err != nil {
		t.Fatal(err)
	}
	want := "x\n\n<video controls=\"\"></video>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemove(t *testing.T) {
	conv := New(nil)
	conv.Remove(Filter{Tag: "aside"})
	got, err := conv.ConvertString("<p>keep</p><aside>drop</aside>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "keep" {
		t.Errorf("got %q, want %q", got, "keep")
	}
}

// Blank classification is a reserved dispatch band: it wins even over a
// freshly registered custom rule.
func TestBlankBeatsCustomRule(t *testing.T) {
	conv := New(nil)
	conv.AddRule(Rule{
		Filter: Filter{Tag: "div"},
		Replacement: func(string, *Node, Context, *Options) string {
			return "CUSTOM"
		},
	})

	got, err := conv.ConvertString("<div></div>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("blank div: got %q, want empty", got)
	}

	got, err = conv.ConvertString("<div>x</div>")
	if err != nil {
		t.Fatal(err)
	}
	if got != "CUSTOM" {
		t.Errorf("non-blank div: got %q, want CUSTOM", got)
	}
}

func TestBlankRuleOutput(t *testing.T) {
	rs := newRules(DefaultOptions())

	blankDiv := NewElement("div")
	r := rs.forNode(blankDiv, Context{})
	if got := r.Replacement("", blankDiv, Context{}, rs.opt); got != "\n\n" {
		t.Errorf("blank block: got %q, want blank line pair", got)
	}

	blankSpan := NewElement("span")
	r = rs.forNode(blankSpan, Context{})
	if got := r.Replacement("", blankSpan, Context{}, rs.opt); got != "" {
		t.Errorf("blank inline: got %q, want empty", got)
	}
}

func TestDefaultRule(t *testing.T) {
	got := convert(t, "<span>x</span>")
	if got != "x" {
		t.Errorf("inline passthrough: got %q", got)
	}
	got = convert(t, "<section>x</section>")
	if got != "x" {
		t.Errorf("single block: got %q", got)
	}
	got = convert(t, "<section>a</section><section>b</section>")
	if got != "a\n\nb" {
		t.Errorf("block siblings: got %q, want %q", got, "a\n\nb")
	}
}
