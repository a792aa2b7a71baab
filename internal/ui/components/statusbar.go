package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	modeBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#7f57b4")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)
	hintSegmentStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#273540")).
				Padding(0, 1).
				MarginRight(1)
)

// Hint formats a single key hint like "Save ctrl+s".
func Hint(k, desc string) string {
	return hintDescStyle.Render(desc+" ") + keyCapStyle.Render(k)
}

// BindingHints builds hints from the help text of enabled bindings.
func BindingHints(bindings ...key.Binding) []string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, Hint(h.Key, upperFirst(h.Desc)))
	}
	return hints
}

// StatusBar renders the mode badge and the hints, wrapped into rows that
// fit width and centred. A width of zero keeps everything on one row.
func StatusBar(mode string, hints []string, width int) string {
	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		segments = append(segments, hintSegmentStyle.Render(h))
	}
	if mode != "" {
		segments = append([]string{modeBadgeStyle.Render(mode)}, segments...)
	}
	if len(segments) == 0 {
		return ""
	}

	rows := packRows(segments, width)
	for i, row := range rows {
		if width > 0 {
			row = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
		}
		rows[i] = row
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// packRows fills rows greedily. A segment wider than width gets a row of its
// own; width <= 0 means one row.
func packRows(segments []string, width int) []string {
	var rows [][]string
	rowWidth := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg)
		if len(rows) == 0 || (width > 0 && rowWidth+w > width) {
			rows = append(rows, nil)
			rowWidth = 0
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], seg)
		rowWidth += w
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = lipgloss.JoinHorizontal(lipgloss.Center, r...)
	}
	return out
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
