package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
)

const overviewBarWidth = 8

// FormatOverview renders the whole schedule as a table, one row per day,
// with the active day marked.
func FormatOverview(p domain.Program, activeDay int, now time.Time) string {
	var b strings.Builder

	total := domain.ComputeStats(p).Progress
	b.WriteString(Header(fmt.Sprintf("%s · %s · %d days/week", p.UserProfile.Goal, p.UserProfile.Level, p.UserProfile.DaysPerWeek)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Overall"), ProgressBar(total, dayProgressBarWidth))

	headers := []string{"", "#", "WEEK", "DATE", "DAY", "FOCUS", "DONE"}
	rows := make([][]string, 0, len(p.Schedule))
	for i, day := range p.Schedule {
		marker := " "
		if i == activeDay {
			marker = StyleHeader.Render("▶")
		}
		date := p.DateForDay(i)
		dateText := date.Format("Mon Jan 2")
		if domain.SameDay(date, now) {
			dateText = StyleGreen.Render(dateText)
		}

		prog := day.Progress()
		var pct float64
		if prog.Total > 0 {
			pct = float64(prog.Completed) / float64(prog.Total)
		}
		done := RenderCompactBar(pct, overviewBarWidth, false) + " " + Dim(fmt.Sprintf("%d/%d", prog.Completed, prog.Total))
		if day.IsComplete() {
			done = StyleGreen.Render("✔ complete")
		}

		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", WeekOf(i, p.UserProfile.DaysPerWeek)),
			dateText,
			Bold(Truncate(day.DayName, 24)),
			Truncate(day.Focus, 32),
			done,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}
