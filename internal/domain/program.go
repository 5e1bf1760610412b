package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrDayOutOfRange is returned when a mutation addresses a day index that
// the schedule does not have.
var ErrDayOutOfRange = errors.New("day index out of range")

const (
	defaultDailyTip = "Small progress is still progress."
)

// GeneratedTask is a task descriptor produced by the plan generator.
type GeneratedTask struct {
	Description string
	Category    string
}

// GeneratedDay is a day descriptor produced by the plan generator.
type GeneratedDay struct {
	Day      string
	Focus    string
	DailyTip string
	Tasks    []GeneratedTask
}

// Program is the four-week plan owned by one profile. CreatedAt anchors the
// calendar dates of the schedule. Mutators return a new Program and never
// write to the receiver's schedule slice.
type Program struct {
	ID          string
	CreatedAt   time.Time
	UserProfile UserProfile
	Schedule    []DayPlan
}

// NewProgram builds a program from generated day descriptors. Days map
// one-to-one by position, so the schedule length is whatever the generator
// returned. Every task starts incomplete at medium priority with a fresh id.
func NewProgram(profile UserProfile, days []GeneratedDay, now time.Time) Program {
	schedule := make([]DayPlan, len(days))
	for i, gd := range days {
		name := strings.TrimSpace(gd.Day)
		if name == "" {
			name = fmt.Sprintf("Day %d", i+1)
		}
		tip := strings.TrimSpace(gd.DailyTip)
		if tip == "" {
			tip = defaultDailyTip
		}
		tasks := make([]Task, len(gd.Tasks))
		for j, gt := range gd.Tasks {
			tasks[j] = newTask(TaskInput{
				Description: gt.Description,
				Type:        ClassifyCategory(gt.Category),
				Priority:    PriorityMedium,
			})
		}
		schedule[i] = DayPlan{
			DayName:  name,
			Focus:    gd.Focus,
			DailyTip: tip,
			Tasks:    tasks,
		}
	}
	return Program{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		UserProfile: profile,
		Schedule:    schedule,
	}
}

// Days returns the number of scheduled days.
func (p Program) Days() int {
	return len(p.Schedule)
}

// Day returns the plan at dayIndex.
func (p Program) Day(dayIndex int) (DayPlan, error) {
	if dayIndex < 0 || dayIndex >= len(p.Schedule) {
		return DayPlan{}, fmt.Errorf("%w: %d (program has %d days)", ErrDayOutOfRange, dayIndex, len(p.Schedule))
	}
	return p.Schedule[dayIndex], nil
}

// DateForDay is the calendar date of the day at dayIndex.
func (p Program) DateForDay(dayIndex int) time.Time {
	return ScheduledDate(p.CreatedAt, dayIndex, p.UserProfile.DaysPerWeek)
}

// DayIndexOn returns the index of the first scheduled day falling on or after
// date. Dates past the end of the program map to the last day.
func (p Program) DayIndexOn(date time.Time) int {
	if len(p.Schedule) == 0 {
		return 0
	}
	loc := p.CreatedAt.Location()
	y, m, d := date.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for i := range p.Schedule {
		if !p.DateForDay(i).Before(day) {
			return i
		}
	}
	return len(p.Schedule) - 1
}

// WithProfile replaces the profile and leaves the schedule untouched.
func (p Program) WithProfile(profile UserProfile) Program {
	p.UserProfile = profile
	return p
}

// UpdateDay applies fn to the day at dayIndex and returns the new program.
func (p Program) UpdateDay(dayIndex int, fn func(DayPlan) DayPlan) (Program, error) {
	day, err := p.Day(dayIndex)
	if err != nil {
		return p, err
	}
	schedule := make([]DayPlan, len(p.Schedule))
	copy(schedule, p.Schedule)
	schedule[dayIndex] = fn(day)
	p.Schedule = schedule
	return p, nil
}

func (p Program) ToggleTask(dayIndex int, taskID string) (Program, error) {
	return p.UpdateDay(dayIndex, func(d DayPlan) DayPlan { return d.Toggle(taskID) })
}

func (p Program) UpdateTaskDescription(dayIndex int, taskID, text string) (Program, error) {
	return p.UpdateDay(dayIndex, func(d DayPlan) DayPlan { return d.UpdateDescription(taskID, text) })
}

func (p Program) UpdateTaskPriority(dayIndex int, taskID string, priority Priority) (Program, error) {
	return p.UpdateDay(dayIndex, func(d DayPlan) DayPlan { return d.UpdatePriority(taskID, priority) })
}

func (p Program) CycleTaskPriority(dayIndex int, taskID string) (Program, error) {
	return p.UpdateDay(dayIndex, func(d DayPlan) DayPlan { return d.CyclePriority(taskID) })
}

func (p Program) DeleteTask(dayIndex int, taskID string) (Program, error) {
	return p.UpdateDay(dayIndex, func(d DayPlan) DayPlan { return d.Delete(taskID) })
}

// AddTask appends a task to the day and returns the created task.
func (p Program) AddTask(dayIndex int, in TaskInput) (Program, Task, error) {
	var created Task
	next, err := p.UpdateDay(dayIndex, func(d DayPlan) DayPlan {
		d, created = d.Add(in)
		return d
	})
	return next, created, err
}

func (p Program) ReorderTasks(dayIndex int, tasks []Task) (Program, error) {
	return p.UpdateDay(dayIndex, func(d DayPlan) DayPlan { return d.Reorder(tasks) })
}

func (p Program) MoveTask(dayIndex int, taskID string, position int) (Program, error) {
	return p.UpdateDay(dayIndex, func(d DayPlan) DayPlan { return d.Move(taskID, position) })
}

// FindTask locates a task by id across the whole schedule. Ids are unique
// per day, so the first match wins.
func (p Program) FindTask(taskID string) (int, Task, bool) {
	for i, d := range p.Schedule {
		if t, ok := d.Task(taskID); ok {
			return i, t, true
		}
	}
	return -1, Task{}, false
}
