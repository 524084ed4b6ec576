package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a task completion bar like [████░░░░]  45%.
// pct is clamped to 0-100.
func RenderProgress(pct, width int) string {
	pct = max(0, min(pct, 100))
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d%%", ProgressStyle(pct).Render(bar), pct)
}
