// Package formatter renders leadflow output for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ComplexityStyle colors a complexity tier: complex red, standard yellow, simple green.
func ComplexityStyle(c analysis.Complexity) lipgloss.Style {
	switch c {
	case analysis.ComplexityComplex:
		return StyleRed
	case analysis.ComplexityStandard:
		return StyleYellow
	case analysis.ComplexitySimple:
		return StyleGreen
	default:
		return StyleDim
	}
}

// ComplexityBadge returns an indicator such as "● COMPLEX".
func ComplexityBadge(c analysis.Complexity) string {
	if c == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return ComplexityStyle(c).Render("● " + strings.ToUpper(string(c)))
}

// ImpactStyle colors an insight impact level.
func ImpactStyle(i analysis.Impact) lipgloss.Style {
	switch i {
	case analysis.ImpactHigh:
		return StyleRed
	case analysis.ImpactMedium:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
