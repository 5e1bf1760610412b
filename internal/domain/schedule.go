package domain

import "time"

// ScheduledDate maps a zero-based day index of a program onto its calendar
// date. Each program week spans seven calendar days starting at start; the
// active days inside a week are spread by daysPerWeek:
//
//	1: Mon
//	2: Mon Thu
//	3: Mon Wed Fri
//	4: Mon Tue Thu Fri
//	5+: consecutive days
//
// The result is midnight of the scheduled day in start's location: the
// time-of-day of start is dropped, so only the date is meaningful.
// daysPerWeek below 1 is treated as 1 and a negative dayIndex as 0.
func ScheduledDate(start time.Time, dayIndex, daysPerWeek int) time.Time {
	if daysPerWeek < 1 {
		daysPerWeek = 1
	}
	if dayIndex < 0 {
		dayIndex = 0
	}
	week := dayIndex / daysPerWeek
	dayInWeek := dayIndex % daysPerWeek

	offset := week*7 + intraWeekOffset(dayInWeek, daysPerWeek)
	y, m, d := start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, start.Location()).AddDate(0, 0, offset)
}

func intraWeekOffset(dayInWeek, daysPerWeek int) int {
	switch daysPerWeek {
	case 1:
		return 0
	case 2:
		return dayInWeek * 3
	case 3:
		return dayInWeek * 2
	case 4:
		if dayInWeek >= 2 {
			return dayInWeek + 1
		}
		return dayInWeek
	default:
		return dayInWeek
	}
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
