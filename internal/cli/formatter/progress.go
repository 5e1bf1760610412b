package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindfit/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampBar(pct float64, width int) (float64, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	return pct, width
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// Green from 66%, yellow from 33%, red below.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)
	return fmt.Sprintf("[%s] %3.0f%%", RenderCompactBar(pct, width, false), pct*100)
}

// RenderCompactBar renders the bar alone, without brackets or percentage.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct, width = clampBar(pct, width)
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case dim:
		style = StyleDim
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}
	return style.Render(bar)
}

// ProgressBar renders a domain progress value with its counts.
func ProgressBar(p domain.Progress, width int) string {
	var pct float64
	if p.Total > 0 {
		pct = float64(p.Completed) / float64(p.Total)
	}
	return fmt.Sprintf("%s %s", RenderProgress(pct, width), Dim(fmt.Sprintf("(%d/%d)", p.Completed, p.Total)))
}
