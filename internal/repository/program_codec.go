package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
)

type programRecord struct {
	ID          string        `json:"id"`
	CreatedAt   *int64        `json:"createdAt,omitempty"`
	UserProfile profileRecord `json:"userProfile"`
	Schedule    []dayRecord   `json:"schedule"`
}

type profileRecord struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	BirthYear   int    `json:"birthYear"`
	Country     string `json:"country"`
	Goal        string `json:"goal"`
	Level       string `json:"level"`
	DaysPerWeek int    `json:"daysPerWeek"`
}

type dayRecord struct {
	DayName  string       `json:"dayName"`
	Focus    string       `json:"focus"`
	DailyTip string       `json:"dailyTip,omitempty"`
	Tasks    []taskRecord `json:"tasks"`
}

type taskRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority,omitempty"`
}

// EncodeProgram serializes a program as camelCase JSON with createdAt in
// epoch milliseconds.
func EncodeProgram(p domain.Program) ([]byte, error) {
	ms := p.CreatedAt.UnixMilli()
	rec := programRecord{
		ID:        p.ID,
		CreatedAt: &ms,
		UserProfile: profileRecord{
			Name:        p.UserProfile.Name,
			Gender:      string(p.UserProfile.Gender),
			BirthYear:   p.UserProfile.BirthYear,
			Country:     p.UserProfile.Country,
			Goal:        p.UserProfile.Goal,
			Level:       p.UserProfile.Level,
			DaysPerWeek: p.UserProfile.DaysPerWeek,
		},
		Schedule: make([]dayRecord, len(p.Schedule)),
	}
	for i, d := range p.Schedule {
		tasks := make([]taskRecord, len(d.Tasks))
		for j, t := range d.Tasks {
			tasks[j] = taskRecord{
				ID:          t.ID,
				Description: t.Description,
				Type:        string(t.Type),
				Completed:   t.Completed,
				Priority:    string(t.Priority),
			}
		}
		rec.Schedule[i] = dayRecord{DayName: d.DayName, Focus: d.Focus, DailyTip: d.DailyTip, Tasks: tasks}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding program: %w", err)
	}
	return data, nil
}

// DecodeProgram parses a stored program. Records written before createdAt
// existed get now as their anchor, and tasks without a priority become
// medium. Unknown fields are ignored. A null record or one without any
// scheduled day is corrupt.
func DecodeProgram(data []byte, now time.Time) (domain.Program, error) {
	var stored *programRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.Program{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if stored == nil {
		return domain.Program{}, fmt.Errorf("%w: program is null", ErrCorrupt)
	}
	if len(stored.Schedule) == 0 {
		return domain.Program{}, fmt.Errorf("%w: program has no schedule", ErrCorrupt)
	}
	rec := *stored

	createdAt := now
	if rec.CreatedAt != nil {
		createdAt = time.UnixMilli(*rec.CreatedAt)
	}

	p := domain.Program{
		ID:        rec.ID,
		CreatedAt: createdAt,
		UserProfile: domain.UserProfile{
			Name:        rec.UserProfile.Name,
			Gender:      domain.Gender(rec.UserProfile.Gender),
			BirthYear:   rec.UserProfile.BirthYear,
			Country:     rec.UserProfile.Country,
			Goal:        rec.UserProfile.Goal,
			Level:       rec.UserProfile.Level,
			DaysPerWeek: rec.UserProfile.DaysPerWeek,
		},
		Schedule: make([]domain.DayPlan, len(rec.Schedule)),
	}
	for i, d := range rec.Schedule {
		tasks := make([]domain.Task, len(d.Tasks))
		for j, t := range d.Tasks {
			priority, ok := domain.ParsePriority(t.Priority)
			if !ok {
				priority = domain.PriorityMedium
			}
			tt, ok := domain.ParseTaskType(t.Type)
			if !ok {
				tt = domain.ClassifyCategory(t.Type)
			}
			tasks[j] = domain.Task{
				ID:          t.ID,
				Description: t.Description,
				Type:        tt,
				Completed:   t.Completed,
				Priority:    priority,
			}
		}
		p.Schedule[i] = domain.DayPlan{DayName: d.DayName, Focus: d.Focus, DailyTip: d.DailyTip, Tasks: tasks}
	}
	return p, nil
}
