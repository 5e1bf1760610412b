package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/grindfit/internal/db"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/intelligence"
	"github.com/alexanderramin/grindfit/internal/repository"
)

// Option configures a service.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer UseCaseObserver
	now      func() time.Time
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithClock replaces time.Now, which anchors new programs.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default(), observer: NoopUseCaseObserver{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type programService struct {
	programs repository.ProgramRepo
	cursor   repository.CursorRepo
	uow      db.UnitOfWork
	planner  intelligence.PlanGenerator
	opts     options

	mu        sync.Mutex
	loaded    bool
	state     domain.AppState
	program   *domain.Program
	activeDay int
}

// NewProgramService wires the program aggregate to its stores and the plan
// generator. The stored program is loaded on first use.
func NewProgramService(
	programs repository.ProgramRepo,
	cursor repository.CursorRepo,
	uow db.UnitOfWork,
	planner intelligence.PlanGenerator,
	opts ...Option,
) ProgramService {
	return &programService{
		programs: programs,
		cursor:   cursor,
		uow:      uow,
		planner:  planner,
		opts:     buildOptions(opts),
		state:    domain.StateNoProgram,
	}
}

// ensureLoaded hydrates state from storage once. A corrupt program blob is
// logged and treated as absent. Caller holds mu.
func (s *programService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	p, err := s.programs.Get(ctx)
	switch {
	case err == nil:
		s.program = p
		s.state = domain.StateReady
	case errors.Is(err, repository.ErrNotFound):
	case errors.Is(err, repository.ErrCorrupt):
		s.opts.logger.WarnContext(ctx, "discarding unreadable stored program", "error", err)
	default:
		return fmt.Errorf("loading program: %w", err)
	}

	if s.program != nil {
		day, err := s.cursor.Get(ctx)
		switch {
		case err == nil:
			s.activeDay = clampDay(day, len(s.program.Schedule))
		case errors.Is(err, repository.ErrNotFound):
		case errors.Is(err, repository.ErrCorrupt):
			s.opts.logger.WarnContext(ctx, "discarding unreadable active day", "error", err)
		default:
			return fmt.Errorf("loading active day: %w", err)
		}
	}

	s.loaded = true
	return nil
}

func (s *programService) State(ctx context.Context) (domain.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return "", err
	}
	return s.state, nil
}

func (s *programService) Current(ctx context.Context) (domain.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Program{}, err
	}
	if s.program == nil {
		return domain.Program{}, ErrNoProgram
	}
	return *s.program, nil
}

func (s *programService) Generate(ctx context.Context, profile domain.UserProfile) (p domain.Program, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.opts.observer, "program.generate", start, err, map[string]any{
			"days_per_week": profile.DaysPerWeek,
			"days":          len(p.Schedule),
		})
	}()

	profile = profile.Normalize()
	if err := profile.Validate(s.opts.now()); err != nil {
		return domain.Program{}, err
	}
	return s.regenerate(ctx, profile)
}

// regenerate runs the Loading phase. The lock is released while the model
// is working so readers still see the previous state.
func (s *programService) regenerate(ctx context.Context, profile domain.UserProfile) (domain.Program, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return domain.Program{}, err
	}
	if s.state == domain.StateLoading {
		s.mu.Unlock()
		return domain.Program{}, ErrGenerationInProgress
	}
	prev := s.state
	s.state = domain.StateLoading
	s.mu.Unlock()

	days, genErr := s.planner.GeneratePlan(ctx, profile)

	s.mu.Lock()
	defer s.mu.Unlock()

	if genErr == nil && len(days) == 0 {
		genErr = intelligence.ErrEmptyPlan
	}
	if genErr != nil {
		s.state = prev
		return domain.Program{}, fmt.Errorf("%w: %v", ErrGenerationFailed, genErr)
	}

	program := domain.NewProgram(profile, days, s.opts.now())
	if want := profile.TotalDays(); len(program.Schedule) != want {
		s.opts.logger.WarnContext(ctx, "generated plan has unexpected length",
			"want_days", want, "got_days", len(program.Schedule))
	}
	if err := s.persist(ctx, program, 0); err != nil {
		s.state = prev
		return domain.Program{}, err
	}

	s.program = &program
	s.activeDay = 0
	s.state = domain.StateReady
	return program, nil
}

func (s *programService) UpdateProfile(ctx context.Context, profile domain.UserProfile, c Confirmer) (res ProfileUpdate, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.opts.observer, "program.update_profile", start, err, map[string]any{
			"regenerated": res.Regenerated,
		})
	}()

	profile = profile.Normalize()
	if err := profile.Validate(s.opts.now()); err != nil {
		return ProfileUpdate{}, err
	}

	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return ProfileUpdate{}, err
	}
	if s.state == domain.StateLoading {
		s.mu.Unlock()
		return ProfileUpdate{}, ErrGenerationInProgress
	}
	if s.program == nil {
		s.mu.Unlock()
		return ProfileUpdate{}, ErrNoProgram
	}
	current := *s.program

	if !current.UserProfile.IsStructuralChange(profile) {
		defer s.mu.Unlock()
		next := current.WithProfile(profile)
		if err := s.persist(ctx, next, s.activeDay); err != nil {
			return ProfileUpdate{}, err
		}
		s.program = &next
		return ProfileUpdate{Program: next}, nil
	}
	s.mu.Unlock()

	if err := confirm(ctx, c, StructuralChangePrompt); err != nil {
		return ProfileUpdate{}, err
	}
	p, err := s.regenerate(ctx, profile)
	if err != nil {
		return ProfileUpdate{}, err
	}
	return ProfileUpdate{Program: p, Regenerated: true}, nil
}

func (s *programService) Reset(ctx context.Context, c Confirmer) (err error) {
	start := time.Now()
	defer func() { observe(ctx, s.opts.observer, "program.reset", start, err, nil) }()

	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.state == domain.StateLoading {
		s.mu.Unlock()
		return ErrGenerationInProgress
	}
	if s.program == nil {
		s.mu.Unlock()
		return ErrNoProgram
	}
	s.mu.Unlock()

	if err := confirm(ctx, c, ResetPrompt); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLKVStore(tx)
		if err := repository.NewKVProgramRepo(kv).Delete(ctx); err != nil {
			return err
		}
		return repository.NewKVCursorRepo(kv).Delete(ctx)
	})
	if err != nil {
		return fmt.Errorf("clearing program: %w", err)
	}
	s.program = nil
	s.activeDay = 0
	s.state = domain.StateNoProgram
	return nil
}

// persist writes the program and the cursor in one transaction. Caller
// holds mu.
func (s *programService) persist(ctx context.Context, p domain.Program, activeDay int) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := repository.NewSQLKVStore(tx)
		if err := repository.NewKVProgramRepo(kv).Save(ctx, p); err != nil {
			return err
		}
		return repository.NewKVCursorRepo(kv).Set(ctx, activeDay)
	})
	if err != nil {
		return fmt.Errorf("saving program: %w", err)
	}
	return nil
}

// mutate applies fn to the current program and persists the result before
// installing it.
func (s *programService) mutate(ctx context.Context, name string, dayIndex int, fn func(domain.Program) (domain.Program, error)) (next domain.Program, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.opts.observer, name, start, err, map[string]any{"day_index": dayIndex})
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Program{}, err
	}
	if s.state == domain.StateLoading {
		return domain.Program{}, ErrGenerationInProgress
	}
	if s.program == nil {
		return domain.Program{}, ErrNoProgram
	}

	next, err = fn(*s.program)
	if err != nil {
		return domain.Program{}, err
	}
	if err := s.persist(ctx, next, s.activeDay); err != nil {
		return domain.Program{}, err
	}
	s.program = &next
	return next, nil
}

func (s *programService) ToggleTask(ctx context.Context, dayIndex int, taskID string) (domain.Program, error) {
	return s.mutate(ctx, "task.toggle", dayIndex, func(p domain.Program) (domain.Program, error) {
		return p.ToggleTask(dayIndex, taskID)
	})
}

func (s *programService) UpdateTaskDescription(ctx context.Context, dayIndex int, taskID, text string) (domain.Program, error) {
	return s.mutate(ctx, "task.update_description", dayIndex, func(p domain.Program) (domain.Program, error) {
		return p.UpdateTaskDescription(dayIndex, taskID, text)
	})
}

func (s *programService) UpdateTaskPriority(ctx context.Context, dayIndex int, taskID string, priority domain.Priority) (domain.Program, error) {
	return s.mutate(ctx, "task.update_priority", dayIndex, func(p domain.Program) (domain.Program, error) {
		return p.UpdateTaskPriority(dayIndex, taskID, priority)
	})
}

func (s *programService) CycleTaskPriority(ctx context.Context, dayIndex int, taskID string) (domain.Program, error) {
	return s.mutate(ctx, "task.cycle_priority", dayIndex, func(p domain.Program) (domain.Program, error) {
		return p.CycleTaskPriority(dayIndex, taskID)
	})
}

func (s *programService) DeleteTask(ctx context.Context, dayIndex int, taskID string) (domain.Program, error) {
	return s.mutate(ctx, "task.delete", dayIndex, func(p domain.Program) (domain.Program, error) {
		return p.DeleteTask(dayIndex, taskID)
	})
}

func (s *programService) AddTask(ctx context.Context, dayIndex int, in domain.TaskInput) (domain.Program, domain.Task, error) {
	var created domain.Task
	next, err := s.mutate(ctx, "task.add", dayIndex, func(p domain.Program) (domain.Program, error) {
		var (
			out domain.Program
			err error
		)
		out, created, err = p.AddTask(dayIndex, in)
		return out, err
	})
	if err != nil {
		return domain.Program{}, domain.Task{}, err
	}
	return next, created, nil
}

// ReorderTasks replaces the day's task list as given. A list that is not a
// permutation of the current tasks is accepted and logged.
func (s *programService) ReorderTasks(ctx context.Context, dayIndex int, tasks []domain.Task) (domain.Program, error) {
	return s.mutate(ctx, "task.reorder", dayIndex, func(p domain.Program) (domain.Program, error) {
		day, err := p.Day(dayIndex)
		if err != nil {
			return p, err
		}
		if !day.IsPermutationOf(tasks) {
			s.opts.logger.WarnContext(ctx, "reorder is not a permutation of the day's tasks",
				"day_index", dayIndex, "before", len(day.Tasks), "after", len(tasks))
		}
		return p.ReorderTasks(dayIndex, tasks)
	})
}

func (s *programService) MoveTask(ctx context.Context, dayIndex int, taskID string, position int) (domain.Program, error) {
	return s.mutate(ctx, "task.move", dayIndex, func(p domain.Program) (domain.Program, error) {
		return p.MoveTask(dayIndex, taskID, position)
	})
}

func (s *programService) ActiveDay(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	if s.program == nil {
		return 0, ErrNoProgram
	}
	return s.activeDay, nil
}

// SetActiveDay moves the cursor, clamped to the schedule, and returns the
// stored value.
func (s *programService) SetActiveDay(ctx context.Context, dayIndex int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	if s.program == nil {
		return 0, ErrNoProgram
	}
	day := clampDay(dayIndex, len(s.program.Schedule))
	if day == s.activeDay {
		return day, nil
	}
	if err := s.cursor.Set(ctx, day); err != nil {
		return s.activeDay, fmt.Errorf("saving active day: %w", err)
	}
	s.activeDay = day
	return day, nil
}

func clampDay(day, days int) int {
	if days == 0 || day < 0 {
		return 0
	}
	if day >= days {
		return days - 1
	}
	return day
}
