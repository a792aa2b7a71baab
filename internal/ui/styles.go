package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/jsonedit/internal/document"
)

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#7f57b4") // purple
	ColorAccent     = lipgloss.Color("#a7754e") // warm
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorSuccess    = lipgloss.Color("#3f866b") // green
	ColorWarning    = lipgloss.Color("#c78854") // warning
	ColorBorder     = lipgloss.Color("#273540") // border
	ColorBlue       = lipgloss.Color("#436b77") // blue-teal
)

// --- Reusable Styles ---

var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ModeActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	ModeInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	TypeBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
)

// kindColor returns the hex color used for a value type in detail views.
func kindColor(k document.Kind) string {
	switch k {
	case document.KindInteger, document.KindFloat:
		return string(ColorAccent)
	case document.KindString:
		return string(ColorSuccess)
	case document.KindBool:
		return string(ColorBlue)
	default:
		return string(ColorMuted)
	}
}
