package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BandStyle returns the style a utilization band is drawn in.
func BandStyle(band domain.UtilizationBand) lipgloss.Style {
	switch band {
	case domain.BandNone:
		return StyleDim
	case domain.BandLight:
		return StyleGreen
	case domain.BandModerate:
		return StyleYellow
	case domain.BandHeavy:
		return StyleOrange
	case domain.BandOver:
		return StyleRed.Bold(true)
	}
	return StyleDim
}

// BandGlyph returns the single-cell marker for a band, uncolored.
func BandGlyph(band domain.UtilizationBand) string {
	switch band {
	case domain.BandNone:
		return "·"
	case domain.BandLight:
		return "░"
	case domain.BandModerate:
		return "▒"
	case domain.BandHeavy:
		return "▓"
	case domain.BandOver:
		return "█"
	}
	return "?"
}

// BandIndicator returns a colored marker and label such as "▓ Heavy (81-100%)".
func BandIndicator(band domain.UtilizationBand) string {
	return BandStyle(band).Render(BandGlyph(band) + " " + band.Label())
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
