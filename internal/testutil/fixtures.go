package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
)

// Anchor is a Monday used as the creation date of fixture programs.
var Anchor = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

type ProfileOption func(*domain.UserProfile)

func WithDaysPerWeek(n int) ProfileOption {
	return func(p *domain.UserProfile) { p.DaysPerWeek = n }
}

func WithGoal(goal string) ProfileOption {
	return func(p *domain.UserProfile) { p.Goal = goal }
}

func WithLevel(level string) ProfileOption {
	return func(p *domain.UserProfile) { p.Level = level }
}

func WithCountry(country string) ProfileOption {
	return func(p *domain.UserProfile) { p.Country = country }
}

func WithName(name string) ProfileOption {
	return func(p *domain.UserProfile) { p.Name = name }
}

func NewTestProfile(opts ...ProfileOption) domain.UserProfile {
	p := domain.UserProfile{
		Name:        "Ada",
		Gender:      domain.GenderFemale,
		BirthYear:   1990,
		Country:     "Portugal",
		Goal:        "Muscle Gain",
		Level:       "Beginner",
		DaysPerWeek: 3,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// NewGeneratedDays returns n day descriptors with one task per category.
func NewGeneratedDays(n int) []domain.GeneratedDay {
	days := make([]domain.GeneratedDay, n)
	for i := range days {
		days[i] = domain.GeneratedDay{
			Day:      fmt.Sprintf("Day %d", i+1),
			Focus:    fmt.Sprintf("Focus %d", i+1),
			DailyTip: "Keep going.",
			Tasks: []domain.GeneratedTask{
				{Description: fmt.Sprintf("Squats set %d", i+1), Category: "Workout"},
				{Description: "Greek yogurt with berries", Category: "Nutrition"},
				{Description: "Five minutes of breathing", Category: "Mindset"},
				{Description: "Drink 2 liters of water", Category: "Hydration"},
			},
		}
	}
	return days
}

// NewTestProgram builds a program anchored at Anchor with a full four-week
// schedule for the profile.
func NewTestProgram(opts ...ProfileOption) domain.Program {
	profile := NewTestProfile(opts...)
	return domain.NewProgram(profile, NewGeneratedDays(profile.TotalDays()), Anchor)
}
