package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive day board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the board needs an interactive terminal")
			}
			ctx := cmd.Context()
			if _, err := app.Programs.Current(ctx); err != nil {
				return err
			}
			_, err := tea.NewProgram(newBoardModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

type boardMode int

const (
	modeBrowse boardMode = iota
	modeAdd
	modeEdit
)

type boardLoadedMsg struct {
	program domain.Program
	day     int
	err     error
}

// boardUpdatedMsg carries the program after a mutation, plus the cursor
// position the mutation wants to keep.
type boardUpdatedMsg struct {
	program domain.Program
	taskID  string
	before  domain.Stats
	err     error
}

type boardDayMsg struct {
	day int
	err error
}

// boardIconsMsg reports the background icon pass started with the board.
type boardIconsMsg struct {
	res service.IconPassResult
	err error
}

type boardModel struct {
	ctx  context.Context
	app  *App
	keys boardKeyMap
	help help.Model

	input  textinput.Model
	mode   boardMode
	editID string

	program domain.Program
	day     int
	cursor  int
	loaded  bool
	status  string
	err     error
	width   int

	iconsBusy bool
	iconNote  string
}

func newBoardModel(ctx context.Context, app *App) boardModel {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Prompt = "› "

	return boardModel{
		ctx:   ctx,
		app:   app,
		keys:  newBoardKeyMap(),
		help:  help.New(),
		input: ti,

		iconsBusy: true,
	}
}

func (m boardModel) Init() tea.Cmd {
	app, ctx := m.app, m.ctx
	load := func() tea.Msg {
		p, active, err := currentWithActive(ctx, app)
		return boardLoadedMsg{program: p, day: active, err: err}
	}
	return tea.Batch(load, iconPass(ctx, app.Icons))
}

// iconPass fills in missing category icons while the board stays usable.
// A complete cache makes it a no-op.
func iconPass(ctx context.Context, icons service.IconService) tea.Cmd {
	return func() tea.Msg {
		cached, err := icons.Icons(ctx)
		if err != nil {
			return boardIconsMsg{err: err}
		}
		missing := false
		for _, t := range domain.AllTaskTypes {
			if cached[t] == "" {
				missing = true
				break
			}
		}
		if !missing {
			return boardIconsMsg{}
		}
		res, err := icons.GeneratePass(ctx, false)
		return boardIconsMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.program, m.day, m.loaded = msg.program, msg.day, true
		m.clampCursor()
		return m, nil

	case boardIconsMsg:
		m.iconsBusy = false
		switch {
		case msg.err != nil:
			m.iconNote = "icons unavailable: " + msg.err.Error()
		case len(msg.res.Failed) > 0:
			m.iconNote = fmt.Sprintf("%s could not be drawn", formatter.Plural(len(msg.res.Failed), "icon", "icons"))
		case len(msg.res.Generated) > 0:
			m.iconNote = fmt.Sprintf("%s drawn", formatter.Plural(len(msg.res.Generated), "icon", "icons"))
		}
		return m, nil

	case boardDayMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.day, m.cursor = msg.day, 0
		return m, nil

	case boardUpdatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		wasComplete := m.currentDay().IsComplete()
		m.program = msg.program
		if idx := m.currentDay().IndexOf(msg.taskID); idx >= 0 {
			m.cursor = idx
		}
		m.clampCursor()
		m.status = m.progressNote(msg.before, wasComplete)
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m boardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if !m.loaded {
		return m, nil
	}
	m.status = ""
	tasks := m.currentDay().Tasks

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.PrevDay):
		return m, m.setDay(m.day - 1)
	case key.Matches(msg, m.keys.NextDay):
		return m, m.setDay(m.day + 1)
	case key.Matches(msg, m.keys.Today):
		return m, m.setDay(m.program.DayIndexOn(m.app.now()))
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Placeholder = "New task"
		m.input.SetValue("")
		return m, m.input.Focus()
	}

	if len(tasks) == 0 {
		return m, nil
	}
	t := tasks[m.cursor]
	day, pos := m.day, m.cursor
	programs := m.app.Programs

	switch {
	case key.Matches(msg, m.keys.Toggle):
		return m, m.mutate(t.ID, func(ctx context.Context) (domain.Program, error) {
			return programs.ToggleTask(ctx, day, t.ID)
		})
	case key.Matches(msg, m.keys.Priority):
		return m, m.mutate(t.ID, func(ctx context.Context) (domain.Program, error) {
			return programs.CycleTaskPriority(ctx, day, t.ID)
		})
	case key.Matches(msg, m.keys.MoveUp):
		return m, m.mutate(t.ID, func(ctx context.Context) (domain.Program, error) {
			return programs.MoveTask(ctx, day, t.ID, pos-1)
		})
	case key.Matches(msg, m.keys.MoveDown):
		return m, m.mutate(t.ID, func(ctx context.Context) (domain.Program, error) {
			return programs.MoveTask(ctx, day, t.ID, pos+1)
		})
	case key.Matches(msg, m.keys.Delete):
		return m, m.mutate("", func(ctx context.Context) (domain.Program, error) {
			return programs.DeleteTask(ctx, day, t.ID)
		})
	case key.Matches(msg, m.keys.Edit):
		m.mode = modeEdit
		m.editID = t.ID
		m.input.Placeholder = ""
		m.input.SetValue(t.Description)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		mode, editID, day := m.mode, m.editID, m.day
		m.mode = modeBrowse
		m.input.Blur()
		if text == "" {
			return m, nil
		}
		programs := m.app.Programs
		if mode == modeEdit {
			return m, m.mutate(editID, func(ctx context.Context) (domain.Program, error) {
				return programs.UpdateTaskDescription(ctx, day, editID, text)
			})
		}
		return m, m.mutateAdd(day, text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) mutate(focusID string, fn func(context.Context) (domain.Program, error)) tea.Cmd {
	ctx, before := m.ctx, domain.ComputeStats(m.program)
	return func() tea.Msg {
		p, err := fn(ctx)
		return boardUpdatedMsg{program: p, taskID: focusID, before: before, err: err}
	}
}

func (m boardModel) mutateAdd(day int, text string) tea.Cmd {
	ctx, programs, before := m.ctx, m.app.Programs, domain.ComputeStats(m.program)
	return func() tea.Msg {
		p, t, err := programs.AddTask(ctx, day, domain.TaskInput{Description: text})
		return boardUpdatedMsg{program: p, taskID: t.ID, before: before, err: err}
	}
}

func (m boardModel) setDay(day int) tea.Cmd {
	if day < 0 || day >= len(m.program.Schedule) || day == m.day {
		return nil
	}
	ctx, programs := m.ctx, m.app.Programs
	return func() tea.Msg {
		got, err := programs.SetActiveDay(ctx, day)
		return boardDayMsg{day: got, err: err}
	}
}

func (m boardModel) currentDay() domain.DayPlan {
	day, _ := m.program.Day(m.day)
	return day
}

func (m *boardModel) clampCursor() {
	n := len(m.currentDay().Tasks)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) progressNote(before domain.Stats, wasComplete bool) string {
	after := domain.ComputeStats(m.program)
	var notes []string
	for _, b := range domain.NewlyUnlocked(before, after) {
		notes = append(notes, "🏅 "+b.Name)
	}
	if !wasComplete && m.currentDay().IsComplete() {
		notes = append(notes, formatter.FormatCelebration(m.day))
	}
	return strings.Join(notes, "  ")
}

func (m boardModel) View() string {
	if m.err != nil && !m.loaded {
		return formatter.StyleRed.Render(m.err.Error()) + "\n"
	}
	if !m.loaded {
		return formatter.Dim("Loading…") + "\n"
	}

	day := m.currentDay()
	date := m.program.DateForDay(m.day)
	var b strings.Builder

	title := fmt.Sprintf("Week %d · Day %d/%d", formatter.WeekOf(m.day, m.program.UserProfile.DaysPerWeek), m.day+1, len(m.program.Schedule))
	b.WriteString(formatter.Header(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", formatter.Bold(day.DayName), formatter.Dim(formatter.HumanDateFrom(date, m.app.now())))
	if day.Focus != "" {
		fmt.Fprintf(&b, "%s\n", formatter.StyleFg.Render(day.Focus))
	}
	b.WriteString("\n")

	cursorStyle := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	for i, t := range day.Tasks {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("▸ ")
		}
		b.WriteString(marker + formatter.FormatTaskLine(i+1, t) + "\n")
	}
	if len(day.Tasks) == 0 {
		b.WriteString(formatter.Dim("    No tasks. Press a to add one.") + "\n")
	}

	b.WriteString("\n" + formatter.ProgressBar(day.Progress(), 20) + "\n")
	if day.DailyTip != "" {
		b.WriteString(formatter.StyleAqua.Render("Tip: ") + formatter.Dim(day.DailyTip) + "\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\n" + formatter.Bold("Add task") + "\n" + m.input.View() + "\n")
	case modeEdit:
		b.WriteString("\n" + formatter.Bold("Edit task") + "\n" + m.input.View() + "\n")
	}

	if m.err != nil {
		msg := m.err.Error()
		if errors.Is(m.err, service.ErrGenerationInProgress) {
			msg = "a new plan is being generated, try again in a moment"
		}
		b.WriteString("\n" + formatter.StyleRed.Render(msg) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	switch {
	case m.iconsBusy:
		b.WriteString("\n" + formatter.Dim("Drawing category icons in the background…") + "\n")
	case m.iconNote != "":
		b.WriteString("\n" + formatter.Dim(m.iconNote) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
