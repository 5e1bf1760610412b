package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindfit/internal/domain"
)

const planSystemPrompt = `You are an elite fitness coach designing a 30-day transformation program. Be concise.

You must output ONLY a JSON object of this shape, no markdown, no explanation:
{"days": [{"day": string, "focus": string, "dailyTip": string, "tasks": [{"description": string, "category": "workout"|"nutrition"|"mindset"|"hydration"}]}]}

Rules:
1. "day" is a label such as "Week 1 - Day 1".
2. "focus" is the main theme of the day, e.g. "Week 1: Foundations - Leg Day".
3. "dailyTip" is a short Stoic quote or idea about discipline, strength or endurance.
4. Each task description is actionable and at most 10 words.
5. Every day mixes workout, nutrition and mindset tasks; add hydration where useful.`

// buildPlanPrompt describes the user and the exact number of active days
// the plan must contain.
func buildPlanPrompt(p domain.UserProfile) string {
	total := p.TotalDays()
	var b strings.Builder
	fmt.Fprintf(&b, "Create a complete 4-WEEK fitness and wellness routine for a person named %s.\n\n", p.Name)
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Goal: %s\n", p.Goal)
	fmt.Fprintf(&b, "- Fitness level: %s\n", p.Level)
	fmt.Fprintf(&b, "- Commitment: %d days per week\n", p.DaysPerWeek)
	if p.Gender != "" {
		fmt.Fprintf(&b, "- Gender: %s\n", p.Gender)
	}
	if p.BirthYear > 0 {
		fmt.Fprintf(&b, "- Born: %d\n", p.BirthYear)
	}
	if p.Country != "" {
		fmt.Fprintf(&b, "- Country: %s (suggest locally available foods)\n", p.Country)
	}
	b.WriteString("\nOutput requirements:\n")
	fmt.Fprintf(&b, "1. Generate exactly %d days (4 weeks x %d days).\n", total, p.DaysPerWeek)
	fmt.Fprintf(&b, "2. List them in chronological order: Week 1 Day 1 up to Week 4 Day %d.\n", p.DaysPerWeek)
	b.WriteString("3. Apply progressive overload: week 1 is introductory, week 4 the most challenging.\n")
	fmt.Fprintf(&b, "Do NOT include rest days. Only output the %d active days.\n", total)
	return b.String()
}

const iconSystemPrompt = `You design user interface icons as inline SVG.
Output ONLY a single <svg> element with a viewBox of "0 0 64 64". No markdown, no explanation, no text elements.`

var iconSubjects = map[domain.TaskType]string{
	domain.TaskWorkout:   "dumbbell gym weight",
	domain.TaskNutrition: "healthy apple fruit",
	domain.TaskMindset:   "human brain intelligence",
	domain.TaskHydration: "water drop splash",
}

func buildIconPrompt(t domain.TaskType) string {
	subject, ok := iconSubjects[t]
	if !ok {
		subject = strings.ToLower(string(t))
	}
	return fmt.Sprintf(`Generate a simple, high-contrast, vector-style UI icon for "%s".
Style: minimalist, glowing neon lime green (#a3e635) strokes on a solid black background.
The icon is centered, bold and clearly recognizable. No text.`, subject)
}
