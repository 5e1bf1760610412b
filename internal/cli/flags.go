package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/export"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*priorityValue)(nil)
	_ pflag.Value = (*taskTypeValue)(nil)
	_ pflag.Value = (*formatValue)(nil)
	_ pflag.Value = (*genderValue)(nil)
)

type priorityValue domain.Priority

func newPriorityValue(def domain.Priority, p *domain.Priority) *priorityValue {
	*p = def
	return (*priorityValue)(p)
}

func (v *priorityValue) String() string { return string(*v) }
func (v *priorityValue) Type() string   { return "priority" }

func (v *priorityValue) Set(s string) error {
	p, ok := domain.ParsePriority(s)
	if !ok {
		return fmt.Errorf("must be one of low, medium, high")
	}
	*v = priorityValue(p)
	return nil
}

type taskTypeValue domain.TaskType

func newTaskTypeValue(def domain.TaskType, t *domain.TaskType) *taskTypeValue {
	*t = def
	return (*taskTypeValue)(t)
}

func (v *taskTypeValue) String() string { return strings.ToLower(string(*v)) }
func (v *taskTypeValue) Type() string   { return "type" }

func (v *taskTypeValue) Set(s string) error {
	t, ok := domain.ParseTaskType(s)
	if !ok {
		return fmt.Errorf("must be one of workout, nutrition, mindset, hydration")
	}
	*v = taskTypeValue(t)
	return nil
}

type formatValue export.Format

func newFormatValue(def export.Format, f *export.Format) *formatValue {
	*f = def
	return (*formatValue)(f)
}

func (v *formatValue) String() string { return string(*v) }
func (v *formatValue) Type() string   { return "format" }

func (v *formatValue) Set(s string) error {
	f, err := export.ParseFormat(s)
	if err != nil {
		return err
	}
	*v = formatValue(f)
	return nil
}

type genderValue domain.Gender

func newGenderValue(g *domain.Gender) *genderValue {
	return (*genderValue)(g)
}

func (v *genderValue) String() string { return string(*v) }
func (v *genderValue) Type() string   { return "gender" }

func (v *genderValue) Set(s string) error {
	for _, g := range domain.Genders {
		if strings.EqualFold(string(g), strings.TrimSpace(s)) {
			*v = genderValue(g)
			return nil
		}
	}
	return fmt.Errorf("must be Male or Female")
}

// profileFlags binds the onboarding fields to a command's flags.
type profileFlags struct {
	name        string
	gender      domain.Gender
	birthYear   int
	country     string
	goal        string
	level       string
	daysPerWeek int
}

func (f *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Your name")
	fs.Var(newGenderValue(&f.gender), "gender", "Male or Female")
	fs.IntVar(&f.birthYear, "birth-year", 0, "Year of birth")
	fs.StringVar(&f.country, "country", "", "Country of residence")
	fs.StringVar(&f.goal, "goal", "", "One of: "+strings.Join(domain.Goals, ", "))
	fs.StringVar(&f.level, "level", "", "One of: "+strings.Join(domain.Levels, ", "))
	fs.IntVar(&f.daysPerWeek, "days", 0, fmt.Sprintf("Training days per week (%d-%d)", domain.MinDaysPerWeek, domain.MaxDaysPerWeek))
}

// complete reports whether every field was supplied.
func (f *profileFlags) complete() bool {
	return f.name != "" && f.gender != "" && f.birthYear != 0 && f.country != "" &&
		f.goal != "" && f.level != "" && f.daysPerWeek != 0
}

func (f *profileFlags) profile() domain.UserProfile {
	return domain.UserProfile{
		Name:        f.name,
		Gender:      f.gender,
		BirthYear:   f.birthYear,
		Country:     f.country,
		Goal:        f.goal,
		Level:       f.level,
		DaysPerWeek: f.daysPerWeek,
	}
}

// overlay returns base with every flag the user actually set applied.
func (f *profileFlags) overlay(fs *pflag.FlagSet, base domain.UserProfile) domain.UserProfile {
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "name":
			base.Name = f.name
		case "gender":
			base.Gender = f.gender
		case "birth-year":
			base.BirthYear = f.birthYear
		case "country":
			base.Country = f.country
		case "goal":
			base.Goal = f.goal
		case "level":
			base.Level = f.level
		case "days":
			base.DaysPerWeek = f.daysPerWeek
		}
	})
	return base
}
