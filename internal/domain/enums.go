package domain

import "strings"

type TaskType string

const (
	TaskWorkout   TaskType = "WORKOUT"
	TaskNutrition TaskType = "NUTRITION"
	TaskMindset   TaskType = "MINDSET"
	TaskHydration TaskType = "HYDRATION"
)

// AllTaskTypes lists the task categories in display and icon-generation order.
var AllTaskTypes = []TaskType{TaskWorkout, TaskNutrition, TaskMindset, TaskHydration}

// ParseTaskType accepts a task type name in any case.
func ParseTaskType(s string) (TaskType, bool) {
	t := TaskType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllTaskTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// ClassifyCategory maps a free-form category string returned by the plan
// generator onto a TaskType. Matching is case-insensitive and by substring,
// checked in the order workout, nutrition, mindset, hydration. Anything
// unrecognized is a workout.
func ClassifyCategory(category string) TaskType {
	lower := strings.ToLower(category)
	switch {
	case strings.Contains(lower, "workout"):
		return TaskWorkout
	case strings.Contains(lower, "nutrition"):
		return TaskNutrition
	case strings.Contains(lower, "mindset"):
		return TaskMindset
	case strings.Contains(lower, "hydra"):
		return TaskHydration
	default:
		return TaskWorkout
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts a priority name in any case.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	default:
		return "", false
	}
}

// Next returns the priority that follows p in the low → medium → high cycle.
// Unknown values are treated as medium.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityHigh:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// XP is the experience awarded for completing a task of this priority.
func (p Priority) XP() int {
	switch p {
	case PriorityHigh:
		return 100
	case PriorityLow:
		return 25
	default:
		return 50
	}
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

var Genders = []Gender{GenderMale, GenderFemale}

// Goals are the fitness objectives offered during onboarding.
var Goals = []string{"Weight Loss", "Muscle Gain", "Endurance", "Flexibility"}

// Levels are the fitness levels offered during onboarding.
var Levels = []string{"Beginner", "Intermediate", "Advanced"}

// TrainingFrequencies are the days-per-week choices offered during onboarding.
// The scheduler itself accepts anything from MinDaysPerWeek to MaxDaysPerWeek.
var TrainingFrequencies = []int{3, 4, 5, 6}

const (
	MinDaysPerWeek = 1
	MaxDaysPerWeek = 7
	ProgramWeeks   = 4
	MinBirthYear   = 1920
)

// AppState is the whole-application lifecycle state.
type AppState string

const (
	StateNoProgram AppState = "no_program"
	StateLoading   AppState = "loading"
	StateReady     AppState = "ready"
)
