package domain

import "math"

// Progress counts completed tasks against the total.
type Progress struct {
	Completed int
	Total     int
}

// Percent is the rounded completion percentage, 0 when there are no tasks.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
}

// XPPerLevel is the experience needed to advance one level.
const XPPerLevel = 250

type BadgeID string

const (
	BadgeFirstStep     BadgeID = "FIRST_STEP"
	BadgeDayOneDone    BadgeID = "DAY_ONE_DONE"
	BadgeHighPerformer BadgeID = "HIGH_PERFORMER"
	BadgeWeekWarrior   BadgeID = "WEEK_WARRIOR"
	BadgeIronWill      BadgeID = "IRON_WILL"
	BadgeUnstoppable   BadgeID = "UNSTOPPABLE"
)

type Badge struct {
	ID          BadgeID
	Name        string
	Description string
}

// Badges lists every achievement in unlock display order.
var Badges = []Badge{
	{BadgeFirstStep, "First Step", "Complete your first task."},
	{BadgeDayOneDone, "Day One Done", "Complete 100% of tasks on Day 1."},
	{BadgeHighPerformer, "High Performer", "Complete 3 High Priority tasks."},
	{BadgeWeekWarrior, "Week Warrior", "Complete 7 days of training."},
	{BadgeIronWill, "Iron Will", "Reach Level 5."},
	{BadgeUnstoppable, "Unstoppable", "Reach 1000 XP."},
}

// Stats is derived entirely from a program's current task state.
type Stats struct {
	Progress      Progress
	XP            int
	Level         int
	HighCompleted int
	CompletedDays int
	Unlocked      []Badge
}

// XPToNextLevel is the experience still needed to reach Level+1.
func (s Stats) XPToNextLevel() int {
	return s.Level*XPPerLevel - s.XP
}

// HasBadge reports whether the badge is unlocked.
func (s Stats) HasBadge(id BadgeID) bool {
	for _, b := range s.Unlocked {
		if b.ID == id {
			return true
		}
	}
	return false
}

// ComputeStats walks the schedule once and derives XP, level and badges.
func ComputeStats(p Program) Stats {
	var s Stats
	for _, day := range p.Schedule {
		dp := day.Progress()
		s.Progress.Completed += dp.Completed
		s.Progress.Total += dp.Total
		if day.IsComplete() {
			s.CompletedDays++
		}
		for _, t := range day.Tasks {
			if !t.Completed {
				continue
			}
			s.XP += t.Priority.XP()
			if t.Priority == PriorityHigh {
				s.HighCompleted++
			}
		}
	}
	s.Level = 1 + s.XP/XPPerLevel

	earned := map[BadgeID]bool{
		BadgeFirstStep:     s.Progress.Completed > 0,
		BadgeDayOneDone:    len(p.Schedule) > 0 && p.Schedule[0].IsComplete(),
		BadgeHighPerformer: s.HighCompleted >= 3,
		BadgeWeekWarrior:   s.CompletedDays >= 7,
		BadgeIronWill:      s.Level >= 5,
		BadgeUnstoppable:   s.XP >= 1000,
	}
	for _, b := range Badges {
		if earned[b.ID] {
			s.Unlocked = append(s.Unlocked, b)
		}
	}
	return s
}

// NewlyUnlocked returns the badges present in after but not in before.
func NewlyUnlocked(before, after Stats) []Badge {
	var out []Badge
	for _, b := range after.Unlocked {
		if !before.HasBadge(b.ID) {
			out = append(out, b)
		}
	}
	return out
}

var celebrationMessages = []string{
	"You're crushing it! Keep this momentum going.",
	"Outstanding work. Your future self thanks you.",
	"Discipline is doing what needs to be done. Great job.",
	"Another day, another victory. Well done.",
	"You are unstoppable. Rest up for tomorrow!",
	"Consistency is key, and you nailed it today.",
	"Great session! You're getting stronger every day.",
	"That's how it's done! Precision and effort.",
	"Level up! You completed everything on the list.",
	"Fantastic effort. Enjoy your recovery.",
}

// CelebrationMessage returns the fixed message shown for a fully completed
// day. The same day always gets the same message.
func CelebrationMessage(dayIndex int) string {
	if dayIndex < 0 {
		dayIndex = -dayIndex
	}
	return celebrationMessages[dayIndex%len(celebrationMessages)]
}
