package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// grindfitHuhTheme returns a huh theme using the formatter palette.
func grindfitHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(grindfitHuhTheme()).WithShowHelp(false)
}

// onboardingInput holds the string-typed form state for a profile.
type onboardingInput struct {
	name      string
	gender    string
	birthYear string
	country   string
	goal      string
	level     string
	days      string
}

func newOnboardingInput(p domain.UserProfile) *onboardingInput {
	in := &onboardingInput{
		name:    p.Name,
		gender:  string(p.Gender),
		country: p.Country,
		goal:    p.Goal,
		level:   p.Level,
		days:    "3",
	}
	if p.BirthYear != 0 {
		in.birthYear = strconv.Itoa(p.BirthYear)
	}
	if p.DaysPerWeek != 0 {
		in.days = strconv.Itoa(p.DaysPerWeek)
	}
	return in
}

func (in *onboardingInput) profile() domain.UserProfile {
	year, _ := strconv.Atoi(in.birthYear)
	days, _ := strconv.Atoi(in.days)
	return domain.UserProfile{
		Name:        in.name,
		Gender:      domain.Gender(in.gender),
		BirthYear:   year,
		Country:     in.country,
		Goal:        in.goal,
		Level:       in.level,
		DaysPerWeek: days,
	}
}

// onboardingForm walks through the profile in two pages: who you are,
// then what you are training for.
func onboardingForm(in *onboardingInput, now time.Time) *huh.Form {
	genders := make([]huh.Option[string], len(domain.Genders))
	for i, g := range domain.Genders {
		genders[i] = huh.NewOption(string(g), string(g))
	}
	days := make([]huh.Option[string], len(domain.TrainingFrequencies))
	for i, d := range domain.TrainingFrequencies {
		days[i] = huh.NewOption(fmt.Sprintf("%d days", d), strconv.Itoa(d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&in.name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("Gender").
				Options(genders...).
				Value(&in.gender),
			huh.NewInput().
				Title("Birth Year").
				Placeholder("1990").
				Value(&in.birthYear).
				Validate(birthYearValidator(now)),
			huh.NewInput().
				Title("Country").
				Placeholder("Start typing…").
				Suggestions(domain.Countries).
				Value(&in.country).
				Validate(validateCountry),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Goal").
				Options(huh.NewOptions(domain.Goals...)...).
				Value(&in.goal),
			huh.NewSelect[string]().
				Title("Fitness Level").
				Options(huh.NewOptions(domain.Levels...)...).
				Value(&in.level),
			huh.NewSelect[string]().
				Title("Training Frequency").
				Options(days...).
				Value(&in.days),
		),
	).WithTheme(grindfitHuhTheme())
}

func validateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("name is required")
	}
	if c := s[0]; !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return fmt.Errorf("name must start with a letter")
	}
	return nil
}

func birthYearValidator(now time.Time) func(string) error {
	return func(s string) error {
		y, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a year like 1990")
		}
		if y < domain.MinBirthYear || y > now.Year() {
			return fmt.Errorf("year must be between %d and %d", domain.MinBirthYear, now.Year())
		}
		return nil
	}
}

func validateCountry(s string) error {
	if _, ok := domain.LookupCountry(s); !ok {
		if matches := domain.SearchCountries(s); len(matches) > 0 && len(matches) <= 3 {
			return fmt.Errorf("did you mean %s?", strings.Join(matches, ", "))
		}
		return fmt.Errorf("pick a country from the list")
	}
	return nil
}
