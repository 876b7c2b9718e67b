package turndown

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Tables are rendered as GitHub-style pipe tables. Cells, rows and sections
// each contribute their fragment from already-rendered content; the table
// rule re-parses the assembled rows to pad every column to its display
// width. A table without a head row gets a separator synthesized after its
// first row, since pipe tables require one.

var cellNewlines = regexp.MustCompile(`[ \t]*\n[ \t\n]*`)

var tableCellRule = Rule{
	Filter: Filter{Tags: []string{"th", "td"}},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		return " " + tableCellText(content) + " |"
	},
}

// tableCellText flattens cell content to a single line and escapes pipes.
func tableCellText(s string) string {
	s = cellNewlines.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

var tableRowRule = Rule{
	Filter: Filter{Tag: "tr"},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		if content == "" {
			return ""
		}
		return "|" + content + "\n"
	},
}

var tableSectionRule = Rule{
	Filter: Filter{Tags: []string{"thead", "tbody", "tfoot"}},
	Replacement: func(content string, n *Node, _ Context, _ *Options) string {
		if n.Name == "THEAD" && content != "" {
			return content + tableSeparator(content)
		}
		return content
	},
}

// tableSeparator builds a separator row with as many columns as the first
// assembled row.
func tableSeparator(rows string) string {
	line, _, _ := strings.Cut(rows, "\n")
	cols := len(splitTableRow(line))
	if cols == 0 {
		return ""
	}
	return "|" + strings.Repeat(" --- |", cols) + "\n"
}

var tableRule = Rule{
	Filter: Filter{Tag: "table"},
	Replacement: func(content string, _ *Node, _ Context, _ *Options) string {
		rows := tableLines(content)
		if len(rows) == 0 {
			return ""
		}
		if !hasSeparatorRow(rows) {
			sep := make([]string, len(rows[0]))
			for i := range sep {
				sep[i] = "---"
			}
			rows = append(rows[:1], append([][]string{sep}, rows[1:]...)...)
		}
		return "\n\n" + formatTable(rows) + "\n\n"
	},
}

// tableLines extracts the pipe rows from assembled section content,
// ignoring anything else that ended up between them.
func tableLines(content string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "|") {
			rows = append(rows, splitTableRow(line))
		}
	}
	return rows
}

// splitTableRow splits a pipe row into trimmed cells, honoring escaped
// pipes inside cell text.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var cells []string
	var cur []rune
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur = append(cur, r)
			escaped = false
		case r == '\\':
			cur = append(cur, r)
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(string(cur)))
			cur = cur[:0]
		default:
			cur = append(cur, r)
		}
	}
	return append(cells, strings.TrimSpace(string(cur)))
}

var separatorCell = regexp.MustCompile(`^:?-+:?$`)

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return len(cells) > 0
}

func hasSeparatorRow(rows [][]string) bool {
	for _, r := range rows {
		if isSeparatorRow(r) {
			return true
		}
	}
	return false
}

// formatTable pads every column to the display width of its widest cell.
func formatTable(rows [][]string) string {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3
	}
	for _, r := range rows {
		if isSeparatorRow(r) {
			continue
		}
		for i, c := range r {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for _, r := range rows {
		sep := isSeparatorRow(r)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(r) {
				cell = r[i]
			}
			sb.WriteString("| ")
			if sep {
				sb.WriteString(strings.Repeat("-", widths[i]))
			} else {
				sb.WriteString(cell)
				sb.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
