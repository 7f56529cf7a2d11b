package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
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
	ColorFaint  = lipgloss.Color("#504945")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFaint  = lipgloss.NewStyle().Foreground(ColorFaint)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OpacityStyle maps a slot opacity onto one of the palette's brightness
// steps. Terminals have no alpha channel, so opacity is quantized.
func OpacityStyle(opacity float64) lipgloss.Style {
	switch {
	case opacity >= 0.95:
		return StyleBold
	case opacity >= 0.4:
		return StyleFg
	case opacity >= 0.1:
		return StyleDim
	default:
		return StyleFaint
	}
}

// OutcomeIndicator returns a colored marker for a report run outcome.
func OutcomeIndicator(o domain.RunOutcome) string {
	switch o {
	case domain.OutcomeSuccess:
		return StyleGreen.Render("● success")
	case domain.OutcomeFailure:
		return StyleRed.Render("● failure")
	default:
		return StyleDim.Render("● " + string(o))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
