package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#273540")).
			Padding(1, 2)

	boxBorderActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7f57b4")).
			Padding(1, 2)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)

	boxValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da"))

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#436b77")).
			Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7a2f3a")).
			Padding(1, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06c75")).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

func boxWidth(width int) int {
	// Use ~70% of terminal width, capped at 80
	if width <= 0 {
		return 0
	}
	w := width * 70 / 100
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func safeBoxWidth(width int) int {
	if width <= 0 {
		return boxWidth(width)
	}
	w := boxWidth(width)
	if w > width {
		return width
	}
	return w
}

// Box renders content inside a bordered box.
func Box(content string, width int) string {
	return boxBorder.Width(safeBoxWidth(width)).Render(content)
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	w := safeBoxWidth(width)
	if w <= 0 {
		return 0
	}
	// Border adds 2, padding adds 4 (left+right).
	inner := w - 6
	if inner < 0 {
		return 0
	}
	return inner
}

// ClampTextWidth truncates text to the given visual width (ANSI-aware).
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	return truncateWidth(cleaned, width)
}

// ActiveBox renders a titled box with the highlighted border, used while the
// content has focus.
func ActiveBox(title, content string, width int) string {
	return titledBoxWithStyle(title, content, width, boxBorderActive, boxHeaderStyle, lipgloss.Color("#7f57b4"))
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	body := errorBodyStyle.Render(message)
	return errorBorder.Width(safeBoxWidth(width)).Render(header + body)
}

// TitledBox renders a box with a header title.
func TitledBox(title, content string, width int) string {
	return titledBoxWithStyle(title, content, width, boxBorder, boxHeaderStyle, lipgloss.Color("#273540"))
}

func titledBoxWithStyle(title, content string, width int, boxStyle, headerStyle lipgloss.Style, borderColor lipgloss.Color) string {
	if title == "" {
		return boxStyle.Width(safeBoxWidth(width)).Render(content)
	}
	boxed := boxStyle.Width(safeBoxWidth(width)).Render(content)
	lines := strings.Split(boxed, "\n")
	if len(lines) == 0 {
		return boxed
	}

	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middleLen := lineWidth - 2
	titleText := fmt.Sprintf(" [ %s ] ", title)
	if lipgloss.Width(titleText) > middleLen {
		titleText = truncateWidth(titleText, middleLen)
	}

	titleWidth := lipgloss.Width(titleText)
	left := (middleLen - titleWidth) / 2
	if left < 0 {
		left = 0
	}
	right := middleLen - titleWidth - left
	if right < 0 {
		right = 0
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	leftSeg := borderStyle.Render(border.TopLeft + strings.Repeat(border.Top, left))
	rightSeg := borderStyle.Render(strings.Repeat(border.Top, right) + border.TopRight)
	line := leftSeg + headerStyle.Render(titleText) + rightSeg
	if w := lipgloss.Width(line); w < lineWidth {
		line += borderStyle.Render(strings.Repeat(border.Top, lineWidth-w))
	} else if w > lineWidth {
		line = lipgloss.NewStyle().MaxWidth(lineWidth).Render(line)
	}

	lines[0] = line
	return strings.Join(lines, "\n")
}

// truncateWidth cuts s to at most max terminal cells. Wide runes that would
// straddle the edge are dropped.
func truncateWidth(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Table renders a key-value table with aligned columns inside a bordered box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	// Find max label width for alignment
	maxLabel := 0
	safeRows := make([]TableRow, len(rows))
	for i, r := range rows {
		safeRows[i] = TableRow{
			Label:      SanitizeOneLine(r.Label),
			Value:      SanitizeOneLine(r.Value),
			ValueColor: r.ValueColor,
		}
		if lipgloss.Width(safeRows[i].Label) > maxLabel {
			maxLabel = lipgloss.Width(safeRows[i].Label)
		}
	}

	contentWidth := BoxContentWidth(width)
	if contentWidth <= 0 {
		contentWidth = maxLabel + 8
	}

	labelWidth := maxLabel
	if labelWidth > 24 {
		labelWidth = 24
	}
	if contentWidth > 0 {
		maxLabelWidth := contentWidth / 2
		if maxLabelWidth < 8 {
			maxLabelWidth = contentWidth
		}
		if labelWidth > maxLabelWidth {
			labelWidth = maxLabelWidth
		}
	}
	if labelWidth < 4 {
		labelWidth = maxLabel
	}
	valueWidth := contentWidth - labelWidth - 2
	if valueWidth < 4 {
		valueWidth = 4
		if contentWidth > 0 {
			labelWidth = maxInt(4, contentWidth-valueWidth-2)
		}
	}

	var b strings.Builder
	for i, r := range safeRows {
		labelText := ClampTextWidth(r.Label, labelWidth)
		valueText := ClampTextWidth(r.Value, valueWidth)
		label := boxLabelStyle.Render(padRight(labelText, labelWidth))
		valueStyle := boxValueStyle
		if r.ValueColor != "" {
			valueStyle = valueStyle.Foreground(lipgloss.Color(r.ValueColor))
		}
		b.WriteString(label + "  " + valueStyle.Render(valueText))
		if i < len(safeRows)-1 {
			b.WriteString("\n")
		}
	}

	if title != "" {
		return TitledBox(title, b.String(), width)
	}
	return Box(b.String(), width)
}

// TableRow is a single row in a key-value table. ValueColor is an optional
// hex color for the value.
type TableRow struct {
	Label      string
	Value      string
	ValueColor string
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
