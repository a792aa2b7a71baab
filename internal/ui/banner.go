package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerArt = strings.Join([]string{
	"    _                         _ _ _",
	"   (_)___  ___  _ __   ___  __| (_) |_",
	"   | / __|/ _ \\| '_ \\ / _ \\/ _` | | __|",
	"   | \\__ \\ (_) | | | |  __/ (_| | | |_",
	"  _/ |___/\\___/|_| |_|\\___|\\__,_|_|\\__|",
	" |__/",
}, "\n")

// RenderBanner returns the styled title block.
func RenderBanner() string {
	lines := splitLines(bannerArt)
	rendered := ""

	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		rendered += BannerStyle.Render(line) + "\n"
	}

	subtitleText := "Flat JSON Editor • Keys, Values, One Level"
	subtitleWidth := lipgloss.Width(subtitleText)
	blockWidth := maxWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	subtitleStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center)
	subtitle := subtitleStyle.Render(subtitleText)

	underlineStyle := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center)
	underline := underlineStyle.Render(strings.Repeat("─", subtitleWidth))

	return rendered + subtitle + "\n" + underline
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
