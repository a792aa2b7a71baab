package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	gridSep    = "│"
	gridCross  = "┼"
	gridRule   = "─"
	gridGutter = 2
)

var (
	gridRuleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#273540"))
	gridCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f57b4")).Bold(true)
	gridActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da")).
			Background(lipgloss.Color("#1f2530")).
			Bold(true)
	gridEditStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da")).
			Background(lipgloss.Color("#2a2238"))
)

// GridColumn is one column of an EntryGrid. Width is the preferred content
// width; the Flex column takes whatever space the others leave.
type GridColumn struct {
	Header string
	Width  int
	Flex   bool
}

// GridRow holds the cell text of one entry. Tint, a hex color, colors the
// last cell (the entry's type).
type GridRow struct {
	Cells []string
	Tint  string
}

// EntryGrid draws the key/value table: a header, a rule and one line per
// row. The Active row gets a cursor in the gutter and a highlight, which
// switches to the edit color while Editing.
type EntryGrid struct {
	Columns []GridColumn
	Rows    []GridRow
	Active  int
	Editing bool
}

// ColumnWidths returns the content width of each column when the grid is
// drawn width cells wide.
func (g EntryGrid) ColumnWidths(width int) []int {
	widths := make([]int, len(g.Columns))
	if len(widths) == 0 {
		return widths
	}
	flex := len(widths) - 1
	used := 0
	for i, c := range g.Columns {
		widths[i] = max(c.Width, 1)
		used += widths[i]
		if c.Flex {
			flex = i
		}
	}
	avail := width - gridGutter - (len(widths)-1)*lipgloss.Width(gridSep)
	widths[flex] = max(widths[flex]+avail-used, 1)
	return widths
}

// Render draws the grid width cells wide. Every line has that width.
func (g EntryGrid) Render(width int) string {
	if width <= 0 {
		return ""
	}
	if len(g.Columns) == 0 {
		return strings.Repeat(" ", width)
	}
	widths := g.ColumnWidths(width)

	lines := make([]string, 0, len(g.Rows)+2)
	lines = append(lines, g.headerLine(widths, width))
	lines = append(lines, ruleLine(widths, width))
	for i, row := range g.Rows {
		lines = append(lines, g.rowLine(widths, row, i == g.Active, width))
	}
	return strings.Join(lines, "\n")
}

func (g EntryGrid) headerLine(widths []int, width int) string {
	cells := make([]string, len(widths))
	for i, c := range g.Columns {
		cells[i] = boxLabelStyle.Inline(true).Render(fitCell(c.Header, widths[i]))
	}
	sep := gridRuleStyle.Render(gridSep)
	return padRight(strings.Repeat(" ", gridGutter)+strings.Join(cells, sep), width)
}

func ruleLine(widths []int, width int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat(gridRule, w)
	}
	line := padRight(strings.Repeat(" ", gridGutter)+strings.Join(parts, gridCross), width)
	return gridRuleStyle.Render(line)
}

func (g EntryGrid) rowLine(widths []int, row GridRow, active bool, width int) string {
	cellStyle := lipgloss.NewStyle()
	sepStyle := gridRuleStyle
	gutter := strings.Repeat(" ", gridGutter)
	if active {
		cellStyle = gridActiveStyle
		if g.Editing {
			cellStyle = gridEditStyle
		}
		sepStyle = gridRuleStyle.Background(cellStyle.GetBackground())
		gutter = gridCursorStyle.Render("›") + " "
	}

	last := len(widths) - 1
	cells := make([]string, len(widths))
	for i, w := range widths {
		text := ""
		if i < len(row.Cells) {
			text = row.Cells[i]
		}
		style := cellStyle
		if i == last && row.Tint != "" && !(active && g.Editing) {
			style = style.Foreground(lipgloss.Color(row.Tint))
		}
		cells[i] = style.Inline(true).Render(fitCell(text, w))
	}
	return padRight(gutter+strings.Join(cells, sepStyle.Render(gridSep)), width)
}

// fitCell sanitizes text to one line and pads or cuts it to exactly width.
func fitCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return padRight(ClampTextWidth(text, width), width)
}
