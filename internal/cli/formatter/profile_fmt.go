package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
)

func FormatProfile(p domain.UserProfile, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Profile"))
	b.WriteString("\n")
	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value)
	}
	row("Name", Bold(p.Name))
	row("Gender", StyleFg.Render(string(p.Gender)))
	row("Born", StyleFg.Render(fmt.Sprintf("%d (age %d)", p.BirthYear, p.Age(now))))
	row("Country", StyleFg.Render(p.Country))
	row("Goal", StyleHeader.Render(p.Goal))
	row("Level", StyleFg.Render(p.Level))
	row("Frequency", StyleFg.Render(fmt.Sprintf("%d days/week · %d days total", p.DaysPerWeek, p.TotalDays())))
	return b.String()
}
