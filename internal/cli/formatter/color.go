package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleDone   = lipgloss.NewStyle().Foreground(ColorDim).Strikethrough(true)
)

// PriorityStyle returns the style for a task priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityLow:
		return StyleBlue
	default:
		return StyleYellow
	}
}

// PriorityPill renders a priority such as "▲ HIGH".
func PriorityPill(p domain.Priority) string {
	label := "● MED"
	switch p {
	case domain.PriorityHigh:
		label = "▲ HIGH"
	case domain.PriorityLow:
		label = "▼ LOW"
	}
	return PriorityStyle(p).Render(label)
}

// TaskTypeStyle returns the accent color for a task category.
func TaskTypeStyle(t domain.TaskType) lipgloss.Style {
	switch t {
	case domain.TaskNutrition:
		return StyleGreen
	case domain.TaskMindset:
		return StylePurple
	case domain.TaskHydration:
		return StyleBlue
	default:
		return StyleHeader
	}
}

// TaskGlyph is the built-in symbol shown for a category when no generated
// icon is available.
func TaskGlyph(t domain.TaskType) string {
	switch t {
	case domain.TaskNutrition:
		return "✿"
	case domain.TaskMindset:
		return "◉"
	case domain.TaskHydration:
		return "≈"
	default:
		return "⚑"
	}
}

// TaskTypeBadge renders a category glyph and name in its accent color.
func TaskTypeBadge(t domain.TaskType) string {
	return TaskTypeStyle(t).Render(TaskGlyph(t) + " " + strings.ToLower(string(t)))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
