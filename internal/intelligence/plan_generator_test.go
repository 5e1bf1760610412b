package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/llm"
	"github.com/alexanderramin/grindfit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLLMClient returns a fixed response and records the last request.
type mockLLMClient struct {
	response string
	err      error
	last     llm.GenerateRequest
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "mock"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func planJSON(n int) string {
	days := make([]map[string]any, n)
	for i := range days {
		days[i] = map[string]any{
			"day":      fmt.Sprintf("Week %d - Day %d", i/3+1, i%3+1),
			"focus":    "Strength",
			"dailyTip": "The obstacle is the way.",
			"tasks": []map[string]string{
				{"description": "3x10 goblet squats", "category": "workout"},
				{"description": "Protein with every meal", "category": "nutrition"},
			},
		}
	}
	data, _ := json.Marshal(map[string]any{"days": days})
	return string(data)
}

func TestGeneratePlan_Success(t *testing.T) {
	client := &mockLLMClient{response: planJSON(12)}
	gen := NewPlanGenerator(client)

	days, err := gen.GeneratePlan(context.Background(), testutil.NewTestProfile())
	require.NoError(t, err)
	require.Len(t, days, 12)
	assert.Equal(t, "Week 1 - Day 1", days[0].Day)
	assert.Equal(t, "Strength", days[0].Focus)
	assert.Equal(t, "The obstacle is the way.", days[0].DailyTip)
	assert.Equal(t, []domain.GeneratedTask{
		{Description: "3x10 goblet squats", Category: "workout"},
		{Description: "Protein with every meal", Category: "nutrition"},
	}, days[0].Tasks)

	assert.Equal(t, llm.TaskPlan, client.last.Task)
	assert.Equal(t, llm.FormatJSON, client.last.Format)
	assert.Contains(t, client.last.UserPrompt, "exactly 12 days")
	assert.Contains(t, client.last.UserPrompt, "Muscle Gain")
	assert.Contains(t, client.last.SystemPrompt, "elite fitness coach")
}

func TestGeneratePlan_CountMismatchPassedThrough(t *testing.T) {
	gen := NewPlanGenerator(&mockLLMClient{response: planJSON(11)})
	days, err := gen.GeneratePlan(context.Background(), testutil.NewTestProfile())
	require.NoError(t, err)
	assert.Len(t, days, 11)
}

func TestGeneratePlan_BareArrayAndNumericDay(t *testing.T) {
	raw := "```json\n[{\"day\": 1, \"focus\": \"Mobility\", \"tasks\": [{\"description\": \"Stretch\", \"category\": \"Mindset\"}]}]\n```"
	days, err := NewPlanGenerator(&mockLLMClient{response: raw}).GeneratePlan(context.Background(), testutil.NewTestProfile())
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Day 1", days[0].Day)
	assert.Equal(t, "", days[0].DailyTip)
}

func TestGeneratePlan_Failures(t *testing.T) {
	cases := []struct {
		name   string
		client *mockLLMClient
		want   error
	}{
		{"unavailable", &mockLLMClient{err: llm.ErrUnavailable}, llm.ErrUnavailable},
		{"timeout", &mockLLMClient{err: llm.ErrTimeout}, llm.ErrTimeout},
		{"prose", &mockLLMClient{response: "Sorry, I can't do that."}, llm.ErrInvalidOutput},
		{"empty", &mockLLMClient{response: `{"days": []}`}, ErrEmptyPlan},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, err := NewPlanGenerator(tc.client).GeneratePlan(context.Background(), testutil.NewTestProfile())
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, days)
		})
	}
}

func TestBuildPlanPrompt(t *testing.T) {
	p := testutil.NewTestProfile(testutil.WithDaysPerWeek(5), testutil.WithGoal("Endurance"), testutil.WithLevel("Advanced"))
	prompt := buildPlanPrompt(p)
	assert.Contains(t, prompt, "named Ada")
	assert.Contains(t, prompt, "exactly 20 days (4 weeks x 5 days)")
	assert.Contains(t, prompt, "Week 4 Day 5")
	assert.Contains(t, prompt, "Goal: Endurance")
	assert.Contains(t, prompt, "Fitness level: Advanced")
	assert.Contains(t, prompt, "Country: Portugal")
	assert.True(t, strings.Contains(prompt, "Do NOT include rest days"))
}
