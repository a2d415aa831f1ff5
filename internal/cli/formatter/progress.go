package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderSetProgress renders captured against target sets as "[████░░░░] 4/8".
// The bar turns green once every target set is captured.
func RenderSetProgress(captured, target, width int) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if target > 0 {
		filled = min(captured*width/target, width)
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch {
	case target > 0 && captured >= target:
		style = StyleGreen
	case captured == 0:
		style = StyleDim
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), captured, target)
}
