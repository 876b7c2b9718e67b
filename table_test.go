package turndown

import (
	"reflect"
	"testing"
)

func TestTableWithHead(t *testing.T) {
	html := "<table><thead><tr><th>Name</th><th>Age</th></tr></thead>" +
		"<tbody><tr><td>Alice</td><td>30</td></tr></tbody></table>"
	want := "| Name  | Age |\n| ----- | --- |\n| Alice | 30  |"
	if got := convert(t, html); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// A table without a head row gets a synthesized separator after its first row.
func TestTableWithoutHead(t *testing.T) {
	html := "<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>"
	want := "| a   | b   |\n| --- | --- |\n| c   | d   |"
	if got := convert(t, html); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTableCellPipeEscaping(t *testing.T) {
	html := "<table><tr><td>a|b</td></tr></table>"
	want := "| a\\|b |\n| ---- |"
	if got := convert(t, html); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTableCellInlineMarkup(t *testing.T) {
	html := "<table><tr><th>H</th></tr><tr><td><strong>b</strong></td></tr></table>"
	want := "| H     |\n| ----- |\n| **b** |"
	if got := convert(t, html); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTableBetweenParagraphs(t *testing.T) {
	html := "<p>before</p><table><tr><td>x</td></tr></table><p>after</p>"
	want := "before\n\n| x   |\n| --- |\n\nafter"
	if got := convert(t, html); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	if got := convert(t, "<p>a</p><table></table>"); got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
}

func TestSplitTableRow(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"| a | b |", []string{"a", "b"}},
		{"|a|b|", []string{"a", "b"}},
		{`| a\|b | c |`, []string{`a\|b`, "c"}},
		{"| one |", []string{"one"}},
	}
	for _, tt := range tests {
		if got := splitTableRow(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTableRow(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsSeparatorRow(t *testing.T) {
	tests := []struct {
		cells []string
		want  bool
	}{
		{[]string{"---", "---"}, true},
		{[]string{":--", "--:", ":-:"}, true},
		{[]string{"---", "x"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isSeparatorRow(tt.cells); got != tt.want {
			t.Errorf("isSeparatorRow(%v) = %v, want %v", tt.cells, got, tt.want)
		}
	}
}

func TestFormatTable(t *testing.T) {
	rows := [][]string{
		{"Name", "Age"},
		{"---", "---"},
		{"Alice", "30"},
	}
	want := "| Name  | Age |\n| ----- | --- |\n| Alice | 30  |"
	if got := formatTable(rows); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Display width, not byte length, drives padding for wide characters.
func TestFormatTableWideRunes(t *testing.T) {
	rows := [][]string{
		{"名前", "x"},
		{"---", "---"},
		{"ab", "y"},
	}
	want := "| 名前 | x   |\n| ---- | --- |\n| ab   | y   |"
	if got := formatTable(rows); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
