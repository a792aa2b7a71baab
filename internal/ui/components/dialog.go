package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#273540")).
	Padding(1, 2).
	Width(48)

var (
	dialogHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)
	dialogBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	dialogFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#436b77"))
)

// Choice is one key a dialog accepts, rendered as "key: label".
type Choice struct {
	Key   string
	Label string
}

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	return ChoiceDialog(title, message, Choice{"y", "confirm"}, Choice{"n", "cancel"})
}

// ChoiceDialog renders a message followed by the keys that answer it.
func ChoiceDialog(title, message string, choices ...Choice) string {
	header := dialogHeaderStyle.Render(SanitizeOneLine(title))
	body := dialogBodyStyle.Render(SanitizeText(message))

	parts := make([]string, 0, len(choices))
	for _, c := range choices {
		parts = append(parts, c.Key+": "+c.Label)
	}
	hint := dialogBodyStyle.Render("\n" + strings.Join(parts, " | "))

	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// InputDialog renders a prompt around an already rendered input field.
func InputDialog(title, field string) string {
	header := dialogHeaderStyle.Render(SanitizeOneLine(title))
	hint := dialogBodyStyle.Render("\nenter: submit | esc: cancel")

	return dialogStyle.Render(header + "\n\n" + dialogFieldStyle.Render(field) + hint)
}
