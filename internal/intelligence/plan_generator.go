package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/llm"
)

// ErrEmptyPlan is returned when the model answers with no days.
var ErrEmptyPlan = errors.New("generated plan has no days")

// PlanGenerator turns a profile into ordered day descriptors.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile domain.UserProfile) ([]domain.GeneratedDay, error)
}

type planResponse struct {
	Days []planDay `json:"days"`
}

type planDay struct {
	Day      label      `json:"day"`
	Focus    string     `json:"focus"`
	DailyTip string     `json:"dailyTip"`
	Tasks    []planTask `json:"tasks"`
}

type planTask struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// label accepts a JSON string or number; models emit "day": 3 as often as
// "day": "Week 1 - Day 3".
type label string

func (l *label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("day label: %w", err)
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		*l = label(fmt.Sprintf("Day %d", i))
		return nil
	}
	*l = label(n.String())
	return nil
}

type planGenerator struct {
	client llm.LLMClient
}

func NewPlanGenerator(client llm.LLMClient) PlanGenerator {
	return &planGenerator{client: client}
}

func (g *planGenerator) GeneratePlan(ctx context.Context, profile domain.UserProfile) ([]domain.GeneratedDay, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlan,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   buildPlanPrompt(profile),
		Format:       llm.FormatJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("generating plan: %w", err)
	}

	days, err := parsePlan(resp.Text)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrEmptyPlan
	}

	out := make([]domain.GeneratedDay, len(days))
	for i, d := range days {
		tasks := make([]domain.GeneratedTask, len(d.Tasks))
		for j, t := range d.Tasks {
			tasks[j] = domain.GeneratedTask{Description: t.Description, Category: t.Category}
		}
		out[i] = domain.GeneratedDay{
			Day:      string(d.Day),
			Focus:    d.Focus,
			DailyTip: d.DailyTip,
			Tasks:    tasks,
		}
	}
	return out, nil
}

// parsePlan accepts the requested {"days": [...]} object and falls back to a
// bare array of days.
func parsePlan(raw string) ([]planDay, error) {
	obj, objErr := llm.ExtractJSON[planResponse](raw, nil)
	if objErr == nil && len(obj.Days) > 0 {
		return obj.Days, nil
	}
	arr, arrErr := llm.ExtractJSON[[]planDay](raw, nil)
	if arrErr == nil {
		return arr, nil
	}
	if objErr != nil {
		return nil, fmt.Errorf("parsing plan: %w", objErr)
	}
	return obj.Days, nil
}
