package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindfit/internal/domain"
)

// FormatStats renders level, XP and the badge list.
func FormatStats(s domain.Stats) string {
	var b strings.Builder

	b.WriteString(Header("Progress"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", padRight(Dim("Level"), 10), StyleHeader.Render(fmt.Sprintf("%d", s.Level)))
	fmt.Fprintf(&b, "%s %s %s\n", padRight(Dim("XP"), 10), Bold(fmt.Sprintf("%d", s.XP)),
		Dim(fmt.Sprintf("(%d to level %d)", s.XPToNextLevel(), s.Level+1)))
	levelPct := float64(s.XP%domain.XPPerLevel) / float64(domain.XPPerLevel)
	fmt.Fprintf(&b, "%s %s\n", padRight(Dim("Next"), 10), RenderProgress(levelPct, 20))
	fmt.Fprintf(&b, "%s %s\n", padRight(Dim("Tasks"), 10), ProgressBar(s.Progress, 20))
	fmt.Fprintf(&b, "%s %s\n", padRight(Dim("Days"), 10), Plural(s.CompletedDays, "day complete", "days complete"))

	b.WriteString("\n")
	b.WriteString(Header("Badges"))
	b.WriteString("\n")
	for _, badge := range domain.Badges {
		if s.HasBadge(badge.ID) {
			fmt.Fprintf(&b, "  %s %s %s\n", StyleYellow.Render("🏅"), Bold(badge.Name), Dim(badge.Description))
		} else {
			fmt.Fprintf(&b, "  %s %s %s\n", Dim("🔒"), Dim(badge.Name), Dim(badge.Description))
		}
	}
	return b.String()
}
