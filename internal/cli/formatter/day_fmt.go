package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
)

const dayProgressBarWidth = 20

// WeekOf returns the 1-based program week a day falls in.
func WeekOf(dayIndex, daysPerWeek int) int {
	if daysPerWeek < 1 {
		daysPerWeek = 1
	}
	if dayIndex < 0 {
		dayIndex = 0
	}
	return dayIndex/daysPerWeek + 1
}

// FormatDay renders one day of the program with numbered tasks. The numbers
// are the positions accepted by the task commands.
func FormatDay(p domain.Program, dayIndex int, now time.Time) string {
	day, err := p.Day(dayIndex)
	if err != nil {
		return StyleRed.Render(err.Error()) + "\n"
	}
	date := p.DateForDay(dayIndex)

	var b strings.Builder
	title := fmt.Sprintf("Week %d · Day %d of %d", WeekOf(dayIndex, p.UserProfile.DaysPerWeek), dayIndex+1, len(p.Schedule))
	b.WriteString(Header(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", Bold(day.DayName), Dim(HumanDateFrom(date, now)+" · "+date.Format("2006-01-02")))
	if day.Focus != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Focus:"), StyleFg.Render(day.Focus))
	}
	b.WriteString("\n")

	if len(day.Tasks) == 0 {
		b.WriteString(Dim("  No tasks for this day.") + "\n")
	}
	for i, t := range day.Tasks {
		b.WriteString(FormatTaskLine(i+1, t))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ProgressBar(day.Progress(), dayProgressBarWidth))
	b.WriteString("\n")
	if day.DailyTip != "" {
		fmt.Fprintf(&b, "\n%s %s\n", StyleAqua.Render("Tip:"), StyleFg.Italic(true).Render(day.DailyTip))
	}
	if day.IsComplete() {
		fmt.Fprintf(&b, "\n%s\n", FormatCelebration(dayIndex))
	}
	return b.String()
}

// FormatTaskLine renders one numbered task row.
func FormatTaskLine(n int, t domain.Task) string {
	desc := StyleFg.Render(t.Description)
	if t.Completed {
		desc = StyleDone.Render(t.Description)
	}
	return fmt.Sprintf("  %s %s %s  %s  %s",
		Dim(fmt.Sprintf("%2d.", n)),
		Checkbox(t.Completed),
		padRight(TaskTypeBadge(t.Type), 11),
		padRight(PriorityPill(t.Priority), 6),
		desc,
	)
}

// FormatCelebration renders the message shown for a fully completed day.
func FormatCelebration(dayIndex int) string {
	return StyleGreen.Bold(true).Render("★ Day complete! ") + StyleGreen.Render(domain.CelebrationMessage(dayIndex))
}

// FormatBadgesUnlocked renders one line per newly unlocked badge.
func FormatBadgesUnlocked(badges []domain.Badge) string {
	var b strings.Builder
	for _, badge := range badges {
		fmt.Fprintf(&b, "%s %s %s\n", StyleYellow.Render("🏅 Badge unlocked:"), Bold(badge.Name), Dim("· "+badge.Description))
	}
	return b.String()
}
