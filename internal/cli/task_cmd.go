package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Edit the tasks of a day",
		Long: "Tasks are referenced by their number on the day view or by an id prefix.\n" +
			"Every subcommand works on the active day unless --day is given.",
	}

	cmd.AddCommand(
		newTaskToggleCmd(app),
		newTaskEditCmd(app),
		newTaskPriorityCmd(app),
		newTaskRemoveCmd(app),
		newTaskAddCmd(app),
		newTaskMoveCmd(app),
		newTaskReorderCmd(app),
	)

	return cmd
}

// dayFlag is the 1-based --day flag; zero means the active day.
type dayFlag int

func (d *dayFlag) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP((*int)(d), "day", "d", 0, "Day number (defaults to the active day)")
}

// resolve returns the program, the targeted day and its 0-based index.
func (d dayFlag) resolve(ctx context.Context, app *App) (domain.Program, domain.DayPlan, int, error) {
	p, dayIndex, err := currentWithActive(ctx, app)
	if err != nil {
		return domain.Program{}, domain.DayPlan{}, 0, err
	}
	if d != 0 {
		if int(d) < 1 || int(d) > len(p.Schedule) {
			return domain.Program{}, domain.DayPlan{}, 0, fmt.Errorf("day must be between 1 and %d", len(p.Schedule))
		}
		dayIndex = int(d) - 1
	}
	plan, err := p.Day(dayIndex)
	if err != nil {
		return domain.Program{}, domain.DayPlan{}, 0, err
	}
	return p, plan, dayIndex, nil
}

// dayOf reads a day from a program a mutation just returned for it.
func dayOf(p domain.Program, dayIndex int) domain.DayPlan {
	plan, _ := p.Day(dayIndex)
	return plan
}

// resolveTask accepts a 1-based position or a unique id prefix.
func resolveTask(day domain.DayPlan, ref string) (domain.Task, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(day.Tasks) {
			return domain.Task{}, fmt.Errorf("task %d does not exist (day has %s)", n, formatter.Plural(len(day.Tasks), "task", "tasks"))
		}
		return day.Tasks[n-1], nil
	}

	var found []domain.Task
	for _, t := range day.Tasks {
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return domain.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return found[0], nil
	default:
		return domain.Task{}, fmt.Errorf("task id prefix %q is ambiguous", ref)
	}
}

func newTaskToggleCmd(app *App) *cobra.Command {
	var day dayFlag

	cmd := &cobra.Command{
		Use:     "toggle TASK...",
		Aliases: []string{"done"},
		Short:   "Mark tasks done or not done",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, plan, dayIndex, err := day.resolve(ctx, app)
			if err != nil {
				return err
			}
			tasks := make([]domain.Task, len(args))
			for i, ref := range args {
				if tasks[i], err = resolveTask(plan, ref); err != nil {
					return err
				}
			}

			before := domain.ComputeStats(p)
			wasComplete := plan.IsComplete()
			for _, t := range tasks {
				if p, err = app.Programs.ToggleTask(ctx, dayIndex, t.ID); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			updated := dayOf(p, dayIndex)
			for _, t := range tasks {
				cur, _ := updated.Task(t.ID)
				printLine(out, "%s %s", formatter.Checkbox(cur.Completed), cur.Description)
			}
			reportProgress(out, p, dayIndex, before, wasComplete)
			return nil
		},
	}

	day.register(cmd)
	return cmd
}

// reportProgress prints newly unlocked badges and the celebration for a day
// that just became complete.
func reportProgress(out io.Writer, p domain.Program, dayIndex int, before domain.Stats, wasComplete bool) {
	after := domain.ComputeStats(p)
	if after.XP != before.XP {
		printLine(out, "%s", formatter.Dim(fmt.Sprintf("XP %d → %d · level %d", before.XP, after.XP, after.Level)))
	}
	fmt.Fprint(out, formatter.FormatBadgesUnlocked(domain.NewlyUnlocked(before, after)))
	if !wasComplete && dayOf(p, dayIndex).IsComplete() {
		printLine(out, "%s", formatter.FormatCelebration(dayIndex))
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var day dayFlag

	cmd := &cobra.Command{
		Use:   "edit TASK TEXT...",
		Short: "Change a task's description",
		Long:  "Replaces the description. An empty text leaves the task unchanged.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, plan, dayIndex, err := day.resolve(ctx, app)
			if err != nil {
				return err
			}
			t, err := resolveTask(plan, args[0])
			if err != nil {
				return err
			}

			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" || text == t.Description {
				printLine(cmd.OutOrStdout(), "%s", formatter.Dim("Description unchanged."))
				return nil
			}
			if _, err := app.Programs.UpdateTaskDescription(ctx, dayIndex, t.ID, text); err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), "Updated: %s", formatter.Bold(text))
			return nil
		},
	}

	day.register(cmd)
	return cmd
}

func newTaskPriorityCmd(app *App) *cobra.Command {
	var day dayFlag

	cmd := &cobra.Command{
		Use:       "priority TASK [low|medium|high]",
		Short:     "Set a task's priority, or cycle it when no level is given",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"low", "medium", "high"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, plan, dayIndex, err := day.resolve(ctx, app)
			if err != nil {
				return err
			}
			t, err := resolveTask(plan, args[0])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				level, ok := domain.ParsePriority(args[1])
				if !ok {
					return fmt.Errorf("priority must be low, medium or high")
				}
				p, err = app.Programs.UpdateTaskPriority(ctx, dayIndex, t.ID, level)
			} else {
				p, err = app.Programs.CycleTaskPriority(ctx, dayIndex, t.ID)
			}
			if err != nil {
				return err
			}

			updated, _ := dayOf(p, dayIndex).Task(t.ID)
			printLine(cmd.OutOrStdout(), "%s %s", formatter.PriorityPill(updated.Priority), updated.Description)
			return nil
		},
	}

	day.register(cmd)
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var day dayFlag

	cmd := &cobra.Command{
		Use:     "rm TASK",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, plan, dayIndex, err := day.resolve(ctx, app)
			if err != nil {
				return err
			}
			t, err := resolveTask(plan, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Programs.DeleteTask(ctx, dayIndex, t.ID); err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), "Deleted: %s", formatter.Dim(t.Description))
			return nil
		},
	}

	day.register(cmd)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		day      dayFlag
		taskType domain.TaskType
		priority domain.Priority
	)

	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a task to the end of a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("task description is required")
			}
			_, _, dayIndex, err := day.resolve(ctx, app)
			if err != nil {
				return err
			}
			p, t, err := app.Programs.AddTask(ctx, dayIndex, domain.TaskInput{
				Description: text,
				Type:        taskType,
				Priority:    priority,
			})
			if err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), "Added task %d: %s %s",
				dayOf(p, dayIndex).IndexOf(t.ID)+1, formatter.TaskTypeBadge(t.Type), formatter.Bold(t.Description))
			return nil
		},
	}

	day.register(cmd)
	cmd.Flags().VarP(newTaskTypeValue(domain.TaskWorkout, &taskType), "type", "t", "workout, nutrition, mindset or hydration")
	cmd.Flags().VarP(newPriorityValue(domain.PriorityMedium, &priority), "priority", "p", "low, medium or high")
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var day dayFlag

	cmd := &cobra.Command{
		Use:   "move TASK POSITION",
		Short: "Move a task to a new position in its day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, plan, dayIndex, err := day.resolve(ctx, app)
			if err != nil {
				return err
			}
			t, err := resolveTask(plan, args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number")
			}
			if p, err = app.Programs.MoveTask(ctx, dayIndex, t.ID, pos-1); err != nil {
				return err
			}
			printTaskList(cmd.OutOrStdout(), dayOf(p, dayIndex))
			return nil
		},
	}

	day.register(cmd)
	return cmd
}

func newTaskReorderCmd(app *App) *cobra.Command {
	var day dayFlag

	cmd := &cobra.Command{
		Use:   "reorder N...",
		Short: "Reorder a day's tasks by listing their current numbers in the new order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, plan, dayIndex, err := day.resolve(ctx, app)
			if err != nil {
				return err
			}
			current := plan.Tasks
			if len(args) != len(current) {
				return fmt.Errorf("list all %d task numbers in the new order", len(current))
			}

			seen := make(map[int]bool, len(args))
			order := make([]domain.Task, len(args))
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil || n < 1 || n > len(current) || seen[n] {
					return fmt.Errorf("%q is not a task number or is repeated", a)
				}
				seen[n] = true
				order[i] = current[n-1]
			}

			p, err := app.Programs.ReorderTasks(ctx, dayIndex, order)
			if err != nil {
				return err
			}
			printTaskList(cmd.OutOrStdout(), dayOf(p, dayIndex))
			return nil
		},
	}

	day.register(cmd)
	return cmd
}

func printTaskList(out io.Writer, day domain.DayPlan) {
	for i, t := range day.Tasks {
		printLine(out, "%s", formatter.FormatTaskLine(i+1, t))
	}
}
