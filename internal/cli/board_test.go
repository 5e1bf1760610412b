package cli

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/intelligence"
	"github.com/alexanderramin/grindfit/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newBoardModel(context.Background(), app), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func boardState(t *testing.T, d *teatest.Driver) boardModel {
	t.Helper()
	m, ok := d.Model.(boardModel)
	require.True(t, ok)
	return m
}

func TestBoard_LoadsActiveDay(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	d := newBoardDriver(t, app)
	d.AssertViewContains("Squats set 1", "Drink 2 liters of water", "Keep going.")
	view := d.View()
	assert.Contains(t, view, "WEEK 1 · DAY 1/12")
	assert.Contains(t, view, "▸")
}

func TestBoard_ToggleUnlocksBadge(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	d := newBoardDriver(t, app)

	d.PressKey('x')
	assert.Contains(t, d.View(), "🏅 First Step")

	p, err := app.Programs.Current(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Schedule[0].Tasks[0].Completed)
}

func TestBoard_CompletingDayCelebrates(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	d := newBoardDriver(t, app)

	for i := 0; i < 4; i++ {
		if i > 0 {
			d.PressKey('j')
		}
		d.PressKey('x')
	}
	assert.Contains(t, d.View(), domain.CelebrationMessage(0))
}

func TestBoard_DayNavigationPersists(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	ctx := context.Background()
	d := newBoardDriver(t, app)

	d.Press("l")
	d.AssertViewContains("DAY 2/12")
	active, err := app.Programs.ActiveDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active)

	d.PressLeft()
	d.PressLeft()
	assert.Contains(t, d.View(), "DAY 1/12", "cannot step before the first day")

	d.PressRight()
	d.PressRight()
	d.AssertViewContains("DAY 3/12")

	d.PressKey('t')
	assert.Equal(t, 0, boardState(t, d).day)
}

func TestBoard_AddTask(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	d := newBoardDriver(t, app)

	d.PressKey('a')
	assert.Contains(t, d.View(), "Add task")
	d.Type("Stretch hamstrings")
	d.PressEnter()

	m := boardState(t, d)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, 4, m.cursor, "cursor follows the new task")

	p, err := app.Programs.Current(context.Background())
	require.NoError(t, err)
	require.Len(t, p.Schedule[0].Tasks, 5)
	added := p.Schedule[0].Tasks[4]
	assert.Equal(t, "Stretch hamstrings", added.Description)
	assert.Equal(t, domain.TaskWorkout, added.Type)
	assert.Equal(t, domain.PriorityMedium, added.Priority)
}

func TestBoard_BlankAddIsIgnored(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	d := newBoardDriver(t, app)

	d.Press("a", " ", " ", "enter")
	d.AssertViewLacks("Add task")

	p, err := app.Programs.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, p.Schedule[0].Tasks, 4)
}

func TestBoard_EditCancelAndSubmit(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	ctx := context.Background()
	d := newBoardDriver(t, app)

	d.PressKey('e')
	d.AssertViewContains("Edit task")
	d.Type(" slowly")
	d.PressEsc()
	d.AssertViewLacks("Edit task")
	p, err := app.Programs.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Squats set 1", p.Schedule[0].Tasks[0].Description)

	d.PressKey('e')
	d.Type(" slowly")
	d.PressEnter()
	p, err = app.Programs.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Squats set 1 slowly", p.Schedule[0].Tasks[0].Description)
	d.AssertViewContains("Squats set 1 slowly")
}

func TestBoard_MovePriorityDelete(t *testing.T) {
	app := testApp(t)
	original := seedProgram(t, app).Schedule[0].Tasks
	ctx := context.Background()
	d := newBoardDriver(t, app)

	d.PressKey('J')
	assert.Equal(t, 1, boardState(t, d).cursor)
	p, err := app.Programs.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, original[0].ID, p.Schedule[0].Tasks[1].ID)

	d.PressKey('p')
	p, err = app.Programs.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, p.Schedule[0].Tasks[1].Priority)

	d.PressKey('d')
	p, err = app.Programs.Current(ctx)
	require.NoError(t, err)
	require.Len(t, p.Schedule[0].Tasks, 3)
	for _, task := range p.Schedule[0].Tasks {
		assert.NotEqual(t, original[0].ID, task.ID)
	}
}

func TestBoard_Quit(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)
	d := newBoardDriver(t, app)

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBoard_NoProgram(t *testing.T) {
	d := newBoardDriver(t, testApp(t))
	assert.Contains(t, d.View(), "no program")
}

// gatedIcons blocks every icon request until release is closed.
type gatedIcons struct {
	started chan struct{}
	release chan struct{}
}

func newGatedIcons() *gatedIcons {
	return &gatedIcons{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gatedIcons) GenerateIcon(ctx context.Context, _ domain.TaskType) (string, error) {
	select {
	case g.started <- struct{}{}:
	default:
	}
	select {
	case <-g.release:
		return intelligence.SVGDataURI(stubSVG), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type countingIcons struct{ calls atomic.Int32 }

func (c *countingIcons) GenerateIcon(context.Context, domain.TaskType) (string, error) {
	c.calls.Add(1)
	return intelligence.SVGDataURI(stubSVG), nil
}

func TestBoard_IconPassDoesNotBlockTasks(t *testing.T) {
	icons := newGatedIcons()
	app, _ := testAppWithStore(t, stubPlanner{}, icons)
	seedProgram(t, app)
	ctx := context.Background()

	d := newBoardDriver(t, app)
	select {
	case <-icons.started:
	case <-time.After(2 * time.Second):
		t.Fatal("opening the board did not start an icon pass")
	}
	d.AssertViewContains("Squats set 1", "Drawing category icons in the background")

	d.PressKey('x')
	d.PressKey('j')
	d.PressKey('p')
	p, err := app.Programs.Current(ctx)
	require.NoError(t, err)
	assert.True(t, p.Schedule[0].Tasks[0].Completed)
	assert.Equal(t, domain.PriorityHigh, p.Schedule[0].Tasks[1].Priority)

	res, err := app.Icons.GeneratePass(ctx, false)
	require.NoError(t, err)
	assert.True(t, res.Skipped, "a second pass is ignored while the board's pass runs")

	close(icons.release)
	require.Eventually(t, func() bool {
		got, err := app.Icons.Icons(ctx)
		return err == nil && len(got) == len(domain.AllTaskTypes)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBoard_IconPassReportsResult(t *testing.T) {
	app := testApp(t)
	seedProgram(t, app)

	d := newBoardDriver(t, app)
	d.AssertViewContains("3 icons drawn")
	d.AssertViewLacks("Drawing category icons")
}

func TestBoard_CompleteIconCacheSkipsPass(t *testing.T) {
	icons := &countingIcons{}
	app, _ := testAppWithStore(t, stubPlanner{}, icons)
	seedProgram(t, app)
	_, err := app.Icons.GeneratePass(context.Background(), false)
	require.NoError(t, err)
	require.EqualValues(t, 4, icons.calls.Load())

	d := newBoardDriver(t, app)
	assert.EqualValues(t, 4, icons.calls.Load())
	d.AssertViewLacks("Drawing category icons", "drawn")
}
