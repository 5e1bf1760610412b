// Package export renders a program as a dated, human-readable document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/grindfit/internal/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// ParseFormat accepts a format name in any case, plus "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, toml or yaml)", s)
	}
}

const dateLayout = "2006-01-02"

type Document struct {
	ProgramID string  `json:"program_id" toml:"program_id" yaml:"program_id"`
	CreatedAt string  `json:"created_at" toml:"created_at" yaml:"created_at"`
	Profile   Profile `json:"profile" toml:"profile" yaml:"profile"`
	Summary   Summary `json:"summary" toml:"summary" yaml:"summary"`
	Days      []Day   `json:"days" toml:"days" yaml:"days"`
}

type Profile struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Gender      string `json:"gender" toml:"gender" yaml:"gender"`
	BirthYear   int    `json:"birth_year" toml:"birth_year" yaml:"birth_year"`
	Country     string `json:"country" toml:"country" yaml:"country"`
	Goal        string `json:"goal" toml:"goal" yaml:"goal"`
	Level       string `json:"level" toml:"level" yaml:"level"`
	DaysPerWeek int    `json:"days_per_week" toml:"days_per_week" yaml:"days_per_week"`
}

type Summary struct {
	Completed int      `json:"completed" toml:"completed" yaml:"completed"`
	Total     int      `json:"total" toml:"total" yaml:"total"`
	Percent   int      `json:"percent" toml:"percent" yaml:"percent"`
	XP        int      `json:"xp" toml:"xp" yaml:"xp"`
	Level     int      `json:"level" toml:"level" yaml:"level"`
	Badges    []string `json:"badges" toml:"badges" yaml:"badges"`
}

type Day struct {
	Number   int    `json:"number" toml:"number" yaml:"number"`
	Date     string `json:"date" toml:"date" yaml:"date"`
	Weekday  string `json:"weekday" toml:"weekday" yaml:"weekday"`
	Name     string `json:"name" toml:"name" yaml:"name"`
	Focus    string `json:"focus" toml:"focus" yaml:"focus"`
	DailyTip string `json:"daily_tip,omitempty" toml:"daily_tip,omitempty" yaml:"daily_tip,omitempty"`
	Complete bool   `json:"complete" toml:"complete" yaml:"complete"`
	Tasks    []Task `json:"tasks" toml:"tasks" yaml:"tasks"`
}

type Task struct {
	Description string `json:"description" toml:"description" yaml:"description"`
	Type        string `json:"type" toml:"type" yaml:"type"`
	Priority    string `json:"priority" toml:"priority" yaml:"priority"`
	Completed   bool   `json:"completed" toml:"completed" yaml:"completed"`
}

// Build flattens p into a document with every day resolved to its date.
func Build(p domain.Program) Document {
	stats := domain.ComputeStats(p)
	badges := make([]string, 0, len(stats.Unlocked))
	for _, b := range stats.Unlocked {
		badges = append(badges, b.Name)
	}

	doc := Document{
		ProgramID: p.ID,
		CreatedAt: p.CreatedAt.Format(dateLayout),
		Profile: Profile{
			Name:        p.UserProfile.Name,
			Gender:      string(p.UserProfile.Gender),
			BirthYear:   p.UserProfile.BirthYear,
			Country:     p.UserProfile.Country,
			Goal:        p.UserProfile.Goal,
			Level:       p.UserProfile.Level,
			DaysPerWeek: p.UserProfile.DaysPerWeek,
		},
		Summary: Summary{
			Completed: stats.Progress.Completed,
			Total:     stats.Progress.Total,
			Percent:   stats.Progress.Percent(),
			XP:        stats.XP,
			Level:     stats.Level,
			Badges:    badges,
		},
		Days: make([]Day, len(p.Schedule)),
	}

	for i, d := range p.Schedule {
		date := p.DateForDay(i)
		tasks := make([]Task, len(d.Tasks))
		for j, t := range d.Tasks {
			tasks[j] = Task{
				Description: t.Description,
				Type:        string(t.Type),
				Priority:    string(t.Priority),
				Completed:   t.Completed,
			}
		}
		doc.Days[i] = Day{
			Number:   i + 1,
			Date:     date.Format(dateLayout),
			Weekday:  date.Weekday().String(),
			Name:     d.DayName,
			Focus:    d.Focus,
			DailyTip: d.DailyTip,
			Complete: d.IsComplete(),
			Tasks:    tasks,
		}
	}
	return doc
}

// Write encodes the program to w in the given format.
func Write(w io.Writer, p domain.Program, format Format) error {
	doc := Build(p)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encoding TOML: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}
