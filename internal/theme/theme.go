// Package theme holds the terminal styles used by the loopwork CLI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/loopwork/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Group names as printed above each section of the list.
const (
	GroupUrgent    = "Urgent"
	GroupUpcoming  = "Upcoming"
	GroupLater     = "Later"
	GroupCompleted = "Completed"
)

// TableBorder is the border drawn around task and directory tables.
var TableBorder = lipgloss.NewStyle().Foreground(ColorBorder)

// HeaderStyle renders table header cells.
var HeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// CellStyle renders table body cells.
var CellStyle = lipgloss.NewStyle().Padding(0, 1)

// HintStyle is used for footers such as the active count.
var HintStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// GroupStyle returns the heading style for a deadline group.
func GroupStyle(group string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch group {
	case GroupUrgent:
		return base.Foreground(ColorRed)
	case GroupUpcoming:
		return base.Foreground(ColorYellow)
	case GroupLater:
		return base.Foreground(ColorBlue)
	case GroupCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base
	}
}

// PriorityStyle returns a color-coded style for a task priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	default:
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
}
