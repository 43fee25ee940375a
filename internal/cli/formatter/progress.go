package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/allot/internal/utilization"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderLoadBar renders a percentage as a bar like [████░░░░]  55%.
// The bar fills to at most 100% and takes the color of the percentage's
// band; the label keeps the real value so over-allocation stays visible.
func RenderLoadBar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}

	shown := utilization.DisplayPercentage(pct)
	filled := int(shown / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := BandStyle(utilization.Classify(pct))
	return fmt.Sprintf("[%s] %4s", style.Render(bar), FormatPercent(pct))
}
