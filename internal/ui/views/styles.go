package views

import (
	"github.com/charmbracelet/lipgloss"

	"blockedit/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Marker        lipgloss.Style
	Focused       lipgloss.Style
	SelectionBg   lipgloss.Style
	TextRange     lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	ModeEdit      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:          lipgloss.NewStyle().Faint(true),
		Marker:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("255")),
		TextRange:     lipgloss.NewStyle().Reverse(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		ModeEdit:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}
}

// KindMarker returns the gutter glyph for a block kind
func KindMarker(kind domain.BlockKind) string {
	switch kind {
	case domain.BlockHeader:
		return "H"
	case domain.BlockList:
		return "•"
	case domain.BlockImage:
		return "▣"
	case domain.BlockQuote:
		return "│"
	default:
		return "¶"
	}
}
