package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidProfile is wrapped by every profile validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

type UserProfile struct {
	Name        string
	Gender      Gender
	BirthYear   int
	Country     string
	Goal        string
	Level       string
	DaysPerWeek int
}

// TotalDays is the number of active days a 4-week program for this profile
// is expected to contain.
func (p UserProfile) TotalDays() int {
	return p.DaysPerWeek * ProgramWeeks
}

// IsStructuralChange reports whether moving from p to next invalidates the
// generated schedule. Only goal, level and training frequency feed the plan.
func (p UserProfile) IsStructuralChange(next UserProfile) bool {
	return p.Goal != next.Goal || p.Level != next.Level || p.DaysPerWeek != next.DaysPerWeek
}

// NormalizeName trims the name and upper-cases its first letter.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Normalize returns a copy with name capitalization, canonical country,
// gender, goal and level spellings applied. It does not validate.
func (p UserProfile) Normalize() UserProfile {
	p.Name = NormalizeName(p.Name)
	if c, ok := LookupCountry(p.Country); ok {
		p.Country = c
	} else {
		p.Country = strings.TrimSpace(p.Country)
	}
	for _, g := range Genders {
		if strings.EqualFold(string(g), strings.TrimSpace(string(p.Gender))) {
			p.Gender = g
		}
	}
	p.Goal = matchOption(Goals, p.Goal)
	p.Level = matchOption(Levels, p.Level)
	return p
}

// Validate checks the profile against the onboarding rules. now supplies the
// current year for the birth year bound.
func (p UserProfile) Validate(now time.Time) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if c := name[0]; !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return fmt.Errorf("%w: name must start with a letter", ErrInvalidProfile)
	}
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("%w: gender must be %q or %q, got %q", ErrInvalidProfile, GenderMale, GenderFemale, p.Gender)
	}
	if p.BirthYear < MinBirthYear || p.BirthYear > now.Year() {
		return fmt.Errorf("%w: birth year must be between %d and %d, got %d", ErrInvalidProfile, MinBirthYear, now.Year(), p.BirthYear)
	}
	if strings.TrimSpace(p.Country) == "" {
		return fmt.Errorf("%w: country is required", ErrInvalidProfile)
	}
	if _, ok := LookupCountry(p.Country); !ok {
		return fmt.Errorf("%w: unknown country %q", ErrInvalidProfile, p.Country)
	}
	if !containsExact(Goals, p.Goal) {
		return fmt.Errorf("%w: goal must be one of %s", ErrInvalidProfile, strings.Join(Goals, ", "))
	}
	if !containsExact(Levels, p.Level) {
		return fmt.Errorf("%w: level must be one of %s", ErrInvalidProfile, strings.Join(Levels, ", "))
	}
	if p.DaysPerWeek < MinDaysPerWeek || p.DaysPerWeek > MaxDaysPerWeek {
		return fmt.Errorf("%w: days per week must be between %d and %d, got %d", ErrInvalidProfile, MinDaysPerWeek, MaxDaysPerWeek, p.DaysPerWeek)
	}
	return nil
}

// Age returns the age the user reaches in the year of now.
func (p UserProfile) Age(now time.Time) int {
	return now.Year() - p.BirthYear
}

func matchOption(options []string, v string) string {
	v = strings.TrimSpace(v)
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o
		}
	}
	return v
}

func containsExact(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
