package render

import "github.com/charmbracelet/lipgloss"

// Palette used across table, tree, and prompt rendering. Adaptive so the
// same styles read well on both light and dark terminal backgrounds.
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	ColorPass   = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
)

// PriorityColor maps a task priority to its display color.
func PriorityColor(priority string) lipgloss.AdaptiveColor {
	switch priority {
	case "critical":
		return ColorFail
	case "high":
		return ColorWarn
	case "low":
		return ColorMuted
	default:
		return ColorAccent
	}
}

// newStyledLine renders text in color when ShouldUseColor allows it.
func newStyledLine(color lipgloss.AdaptiveColor, text string) string {
	if !ShouldUseColor() {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// StatusColor maps a task status to its display color.
func StatusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "done":
		return ColorPass
	case "blocked":
		return ColorFail
	case "cancelled":
		return ColorMuted
	default:
		return ColorAccent
	}
}
