package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/repository"
	"github.com/alexanderramin/grindfit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramService_StartsWithNoProgram(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	state, err := f.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateNoProgram, state)

	_, err = f.svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNoProgram)

	_, err = f.svc.ToggleTask(ctx, 0, "missing")
	assert.ErrorIs(t, err, ErrNoProgram)
}

func TestProgramService_GenerateInstallsAndPersists(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile(testutil.WithName("  ada")))
	require.NoError(t, err)

	assert.Len(t, p.Schedule, 12)
	assert.Equal(t, "Ada", p.UserProfile.Name, "profile should be normalized before generation")
	assert.Equal(t, testutil.Anchor, p.CreatedAt)

	state, err := f.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateReady, state)

	active, err := f.svc.ActiveDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, active)

	// A second service over the same database sees the stored program.
	reloaded := f.build(testutil.NewTestUoW(f.db))
	got, err := reloaded.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Len(t, got.Schedule, 12)
}

func TestProgramService_GenerateRejectsInvalidProfile(t *testing.T) {
	f := newProgramFixture(t)

	_, err := f.svc.Generate(context.Background(), testutil.NewTestProfile(testutil.WithName("")))
	require.ErrorIs(t, err, domain.ErrInvalidProfile)
	assert.Zero(t, f.planner.callCount(), "planner should not be called for an invalid profile")
}

func TestProgramService_GenerationFailureKeepsPreviousProgram(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	f.planner.setErr(errors.New("model offline"))
	_, err = f.svc.Generate(ctx, testutil.NewTestProfile(testutil.WithDaysPerWeek(5)))
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "model offline")

	state, err := f.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateReady, state, "failure should return to the previous state")

	current, err := f.svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
	assert.Len(t, current.Schedule, 12)
}

func TestProgramService_GenerationFailureFromScratch(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()
	f.planner.setErr(errors.New("timeout"))

	_, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.ErrorIs(t, err, ErrGenerationFailed)

	state, err := f.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateNoProgram, state)

	_, err = f.kv.Get(ctx, repository.ProgramKey)
	assert.ErrorIs(t, err, repository.ErrNotFound, "nothing should be persisted")
}

func TestProgramService_EmptyPlanIsAFailure(t *testing.T) {
	f := newProgramFixture(t)
	f.planner.days = []domain.GeneratedDay{}

	_, err := f.svc.Generate(context.Background(), testutil.NewTestProfile())
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestProgramService_KeepsUnexpectedDayCount(t *testing.T) {
	f := newProgramFixture(t)
	f.planner.days = testutil.NewGeneratedDays(11)

	p, err := f.svc.Generate(context.Background(), testutil.NewTestProfile())
	require.NoError(t, err)
	assert.Len(t, p.Schedule, 11)
}

func TestProgramService_RejectsWorkWhileGenerating(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()
	gate := make(chan struct{})
	f.planner.gate = gate

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Generate(ctx, testutil.NewTestProfile())
		done <- err
	}()

	require.Eventually(t, func() bool {
		state, err := f.svc.State(ctx)
		return err == nil && state == domain.StateLoading
	}, 2*time.Second, 5*time.Millisecond)

	_, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	assert.ErrorIs(t, err, ErrGenerationInProgress)
	_, err = f.svc.ToggleTask(ctx, 0, "any")
	assert.ErrorIs(t, err, ErrGenerationInProgress)
	assert.ErrorIs(t, f.svc.Reset(ctx, AutoConfirm(true)), ErrGenerationInProgress)

	close(gate)
	require.NoError(t, <-done)

	state, err := f.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateReady, state)
	assert.Equal(t, 1, f.planner.callCount())
}

func TestProgramService_CorruptBlobTreatedAsAbsent(t *testing.T) {
	for _, blob := range []string{"{not json", "{}", "null", `{"id": "p1", "schedule": []}`} {
		t.Run(blob, func(t *testing.T) {
			f := newProgramFixture(t)
			ctx := context.Background()
			require.NoError(t, f.kv.Put(ctx, repository.ProgramKey, blob))

			state, err := f.svc.State(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.StateNoProgram, state)

			_, err = f.svc.ToggleTask(ctx, 0, "t1")
			assert.ErrorIs(t, err, ErrNoProgram)

			_, err = f.svc.Generate(ctx, testutil.NewTestProfile())
			require.NoError(t, err, "a fresh program should overwrite the unreadable slot")

			state, err = f.svc.State(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.StateReady, state)
		})
	}
}

func TestProgramService_NonStructuralProfileUpdate(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)
	taskID := p.Schedule[0].Tasks[0].ID
	_, err = f.svc.ToggleTask(ctx, 0, taskID)
	require.NoError(t, err)

	never := ConfirmFunc(func(context.Context, string) (bool, error) {
		t.Fatal("non-structural change should not ask for confirmation")
		return false, nil
	})
	res, err := f.svc.UpdateProfile(ctx, testutil.NewTestProfile(testutil.WithName("Grace"), testutil.WithCountry("Japan")), never)
	require.NoError(t, err)

	assert.False(t, res.Regenerated)
	assert.Equal(t, p.ID, res.Program.ID)
	assert.Equal(t, "Grace", res.Program.UserProfile.Name)
	assert.True(t, res.Program.Schedule[0].Tasks[0].Completed, "progress should survive")
	assert.Equal(t, 1, f.planner.callCount())

	reloaded := f.build(testutil.NewTestUoW(f.db))
	got, err := reloaded.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Japan", got.UserProfile.Country)
}

func TestProgramService_StructuralChangeRequiresConfirmation(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	var asked string
	decline := ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		asked = prompt
		return false, nil
	})
	_, err = f.svc.UpdateProfile(ctx, testutil.NewTestProfile(testutil.WithDaysPerWeek(5)), decline)
	require.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, StructuralChangePrompt, asked)

	current, err := f.svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, current.ID, "declined change should leave the program untouched")
	assert.Equal(t, 3, current.UserProfile.DaysPerWeek)
	assert.Equal(t, 1, f.planner.callCount())
}

func TestProgramService_StructuralChangeRegenerates(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)
	_, err = f.svc.SetActiveDay(ctx, 4)
	require.NoError(t, err)

	res, err := f.svc.UpdateProfile(ctx, testutil.NewTestProfile(testutil.WithDaysPerWeek(5)), AutoConfirm(true))
	require.NoError(t, err)

	assert.True(t, res.Regenerated)
	assert.NotEqual(t, p.ID, res.Program.ID)
	assert.Len(t, res.Program.Schedule, 20)

	active, err := f.svc.ActiveDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, active, "regeneration should reset the active day")
}

func TestProgramService_UpdateProfileWithoutProgram(t *testing.T) {
	f := newProgramFixture(t)

	_, err := f.svc.UpdateProfile(context.Background(), testutil.NewTestProfile(), AutoConfirm(true))
	assert.ErrorIs(t, err, ErrNoProgram)
}

func TestProgramService_Reset(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Reset(ctx, nil), ErrNotConfirmed, "nil confirmer never approves")
	require.ErrorIs(t, f.svc.Reset(ctx, AutoConfirm(false)), ErrNotConfirmed)

	state, err := f.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateReady, state)

	require.NoError(t, f.svc.Reset(ctx, AutoConfirm(true)))

	state, err = f.svc.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateNoProgram, state)

	_, err = f.kv.Get(ctx, repository.ProgramKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.kv.Get(ctx, repository.ActiveDayKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProgramService_TaskMutationsPersist(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)
	tasks := p.Schedule[1].Tasks
	require.Len(t, tasks, 4)

	_, err = f.svc.ToggleTask(ctx, 1, tasks[0].ID)
	require.NoError(t, err)
	_, err = f.svc.UpdateTaskDescription(ctx, 1, tasks[1].ID, "Oats with banana")
	require.NoError(t, err)
	_, err = f.svc.UpdateTaskPriority(ctx, 1, tasks[2].ID, domain.PriorityHigh)
	require.NoError(t, err)
	_, err = f.svc.CycleTaskPriority(ctx, 1, tasks[3].ID)
	require.NoError(t, err)
	_, added, err := f.svc.AddTask(ctx, 1, domain.TaskInput{Description: "Foam roll", Type: domain.TaskWorkout, Priority: domain.PriorityLow})
	require.NoError(t, err)
	_, err = f.svc.DeleteTask(ctx, 1, tasks[0].ID)
	require.NoError(t, err)
	_, err = f.svc.MoveTask(ctx, 1, added.ID, 0)
	require.NoError(t, err)

	reloaded := f.build(testutil.NewTestUoW(f.db))
	got, err := reloaded.Current(ctx)
	require.NoError(t, err)

	day := got.Schedule[1]
	require.Len(t, day.Tasks, 4)
	assert.Equal(t, added.ID, day.Tasks[0].ID)
	assert.Equal(t, "Foam roll", day.Tasks[0].Description)
	assert.Equal(t, domain.PriorityLow, day.Tasks[0].Priority)
	assert.Equal(t, "Oats with banana", day.Tasks[1].Description)
	assert.Equal(t, domain.PriorityHigh, day.Tasks[2].Priority)
	assert.Equal(t, domain.PriorityHigh, day.Tasks[3].Priority, "medium cycles to high")

	_, found := day.Task(tasks[0].ID)
	assert.False(t, found, "deleted task should be gone")
}

func TestProgramService_MutationErrorsLeaveProgramUnchanged(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	_, err = f.svc.ToggleTask(ctx, 99, p.Schedule[0].Tasks[0].ID)
	require.ErrorIs(t, err, domain.ErrDayOutOfRange)

	current, err := f.svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, current)
}

func TestProgramService_ReorderAcceptsAnyList(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)
	tasks := p.Schedule[0].Tasks

	reversed := []domain.Task{tasks[3], tasks[2], tasks[1], tasks[0]}
	got, err := f.svc.ReorderTasks(ctx, 0, reversed)
	require.NoError(t, err)
	assert.Equal(t, reversed, got.Schedule[0].Tasks)

	// Not a permutation; stored as given.
	got, err = f.svc.ReorderTasks(ctx, 0, tasks[:2])
	require.NoError(t, err)
	assert.Len(t, got.Schedule[0].Tasks, 2)
}

func TestProgramService_SaveFailureRollsBack(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	p, err := f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)
	taskID := p.Schedule[0].Tasks[0].ID

	// ExecContext #1 is the program write, #2 the cursor write.
	failing := f.build(&testutil.FailOnNthExecUoW{
		DB:     f.db,
		FailOn: 2,
		Err:    fmt.Errorf("injected cursor write failure"),
	})
	_, err = failing.ToggleTask(ctx, 0, taskID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected cursor write failure")

	current, err := failing.Current(ctx)
	require.NoError(t, err)
	assert.False(t, current.Schedule[0].Tasks[0].Completed, "in-memory program should not change on failed save")

	stored, err := repository.NewKVProgramRepo(f.kv).Get(ctx)
	require.NoError(t, err)
	assert.False(t, stored.Schedule[0].Tasks[0].Completed, "program write should be rolled back")
}

func TestProgramService_ActiveDayClampsAndPersists(t *testing.T) {
	f := newProgramFixture(t)
	ctx := context.Background()

	_, err := f.svc.SetActiveDay(ctx, 3)
	require.ErrorIs(t, err, ErrNoProgram)

	_, err = f.svc.Generate(ctx, testutil.NewTestProfile())
	require.NoError(t, err)

	day, err := f.svc.SetActiveDay(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, 11, day)

	day, err = f.svc.SetActiveDay(ctx, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, day)

	_, err = f.svc.SetActiveDay(ctx, 7)
	require.NoError(t, err)

	reloaded := f.build(testutil.NewTestUoW(f.db))
	day, err = reloaded.ActiveDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, day)
}

func TestProgramService_ObserverSeesUseCases(t *testing.T) {
	database := testutil.NewTestDB(t)
	kv := repository.NewSQLKVStore(database)
	obs := &recordingObserver{}
	svc := NewProgramService(
		repository.NewKVProgramRepo(kv),
		repository.NewKVCursorRepo(kv),
		testutil.NewTestUoW(database),
		&fakePlanner{err: errors.New("down")},
		WithObserver(obs),
	)

	_, err := svc.Generate(context.Background(), testutil.NewTestProfile())
	require.Error(t, err)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "program.generate", obs.events[0].Name)
	assert.False(t, obs.events[0].Success)
	assert.ErrorIs(t, obs.events[0].Err, ErrGenerationFailed)
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}
