package repository

import (
	"context"

	"github.com/alexanderramin/grindfit/internal/domain"
)

// Storage slots. The program and icon keys match the layout written by
// earlier releases so existing caches keep loading.
const (
	ProgramKey   = "grindfit_program_v1"
	IconsKey     = "grindfit_icons_v1"
	ActiveDayKey = "grindfit_active_day_v1"
)

// KVStore persists opaque string values under fixed keys.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type ProgramRepo interface {
	// Get returns ErrNotFound when no program is stored and wraps ErrCorrupt
	// when the stored blob cannot be decoded.
	Get(ctx context.Context) (*domain.Program, error)
	Save(ctx context.Context, p domain.Program) error
	Delete(ctx context.Context) error
}

type IconRepo interface {
	Get(ctx context.Context) (map[domain.TaskType]string, error)
	Save(ctx context.Context, icons map[domain.TaskType]string) error
}

type CursorRepo interface {
	Get(ctx context.Context) (int, error)
	Set(ctx context.Context, dayIndex int) error
	Delete(ctx context.Context) error
}
