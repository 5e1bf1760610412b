package service

import (
	"context"

	"github.com/alexanderramin/grindfit/internal/domain"
)

// ProgramService owns the single program of the user and every mutation of
// it. Each successful mutation is persisted before the call returns.
type ProgramService interface {
	State(ctx context.Context) (domain.AppState, error)
	Current(ctx context.Context) (domain.Program, error)

	Generate(ctx context.Context, profile domain.UserProfile) (domain.Program, error)
	UpdateProfile(ctx context.Context, profile domain.UserProfile, c Confirmer) (ProfileUpdate, error)
	Reset(ctx context.Context, c Confirmer) error

	ToggleTask(ctx context.Context, dayIndex int, taskID string) (domain.Program, error)
	UpdateTaskDescription(ctx context.Context, dayIndex int, taskID, text string) (domain.Program, error)
	UpdateTaskPriority(ctx context.Context, dayIndex int, taskID string, p domain.Priority) (domain.Program, error)
	CycleTaskPriority(ctx context.Context, dayIndex int, taskID string) (domain.Program, error)
	DeleteTask(ctx context.Context, dayIndex int, taskID string) (domain.Program, error)
	AddTask(ctx context.Context, dayIndex int, in domain.TaskInput) (domain.Program, domain.Task, error)
	ReorderTasks(ctx context.Context, dayIndex int, tasks []domain.Task) (domain.Program, error)
	MoveTask(ctx context.Context, dayIndex int, taskID string, position int) (domain.Program, error)

	ActiveDay(ctx context.Context) (int, error)
	SetActiveDay(ctx context.Context, dayIndex int) (int, error)
}

// ProfileUpdate reports what UpdateProfile did.
type ProfileUpdate struct {
	Program     domain.Program
	Regenerated bool
}

// IconService maintains the per-category icon cache.
type IconService interface {
	// Icons returns a copy of the cache.
	Icons(ctx context.Context) (map[domain.TaskType]string, error)
	// GeneratePass fetches icons one category at a time. A pass started
	// while another is running returns immediately with Skipped set.
	GeneratePass(ctx context.Context, force bool) (IconPassResult, error)
}

type IconPassResult struct {
	Skipped   bool
	Generated []domain.TaskType
	Empty     []domain.TaskType
	Failed    []domain.TaskType
}
