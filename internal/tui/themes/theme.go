// Package themes holds the color schemes of the terminal UI.
package themes

import (
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

func build(primary, fg, subtle, border, info, success, warning, errColor, muted string) Theme {
	return Theme{
		Primary: lipgloss.Color(primary),
		Muted:   lipgloss.Color(muted),
		Border:  lipgloss.Color(border),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(primary)).
			Foreground(lipgloss.Color(fg)).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),

		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(info)).Bold(true),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(success)).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(warning)).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(errColor)).Bold(true),
		StatusPending: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
	}
}

// Default is the default theme.
var Default = build("#7c3aed", "#fafafa", "#a3a3a3", "#404040", "#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#737373")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("#cba6f7", "#cdd6f4", "#a6adc8", "#45475a", "#89dceb", "#a6e3a1", "#f9e2af", "#f38ba8", "#6c7086")

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Status returns the style used for an applicant status badge.
func (t Theme) Status(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusAccepted:
		return t.StatusSuccess
	case model.StatusOffered:
		return t.StatusWarning
	case model.StatusRejected:
		return t.StatusError
	case model.StatusInterviewed:
		return t.StatusInfo
	default:
		return t.StatusPending
	}
}
