package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDateFrom renders a calendar date relative to now: "Today",
// "Tomorrow", "Yesterday", or "Mon, Jan 8".
func HumanDateFrom(t, now time.Time) string {
	y, m, d := t.Date()
	ref := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	ny, nm, nd := now.In(t.Location()).Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, t.Location())

	switch int(ref.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	default:
		return t.Format("Mon, Jan 2")
	}
}

// Checkbox renders a task completion box.
func Checkbox(done bool) string {
	if done {
		return StyleGreen.Render("[✔]")
	}
	return StyleDim.Render("[ ]")
}

// Truncate shortens s to at most width visible cells, ending in "…".
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// Plural formats n with a singular or plural noun.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
