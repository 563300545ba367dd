package viz

import "github.com/charmbracelet/lipgloss"

// Shared terminal styles for the live view.
var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	ImpactLoud = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	ImpactSoft = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#aaaaaa"))
)

// SurfaceColor maps a surface color tag to a terminal color for the event
// log.
func SurfaceColor(tag string) lipgloss.Style {
	colors := map[string]string{
		"red":     "#ff5555",
		"orange":  "#ffaa33",
		"yellow":  "#ffee55",
		"green":   "#55ff88",
		"cyan":    "#55ffee",
		"blue":    "#5588ff",
		"violet":  "#aa66ff",
		"magenta": "#ff55cc",
	}
	hex, ok := colors[tag]
	if !ok {
		hex = "#ffffff"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
