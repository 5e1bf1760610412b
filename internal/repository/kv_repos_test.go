package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramRepo_SaveGetDelete(t *testing.T) {
	kv := NewSQLKVStore(testutil.NewTestDB(t))
	repo := NewKVProgramRepo(kv)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	p := testutil.NewTestProgram()
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Schedule, got.Schedule)

	require.NoError(t, repo.Delete(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgramRepo_CorruptBlob(t *testing.T) {
	kv := NewSQLKVStore(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, ProgramKey, "{broken"))

	_, err := NewKVProgramRepo(kv).Get(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestIconRepo(t *testing.T) {
	kv := NewSQLKVStore(testutil.NewTestDB(t))
	repo := NewKVIconRepo(kv)
	ctx := context.Background()

	icons, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, icons)

	want := map[domain.TaskType]string{
		domain.TaskWorkout:   "data:image/svg+xml;base64,AAA",
		domain.TaskHydration: "data:image/svg+xml;base64,BBB",
	}
	require.NoError(t, repo.Save(ctx, want))
	icons, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, icons)

	raw, err := kv.Get(ctx, IconsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"WORKOUT":"data:image/svg+xml;base64,AAA","HYDRATION":"data:image/svg+xml;base64,BBB"}`, raw)

	require.NoError(t, kv.Put(ctx, IconsKey, "[]"))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCursorRepo(t *testing.T) {
	kv := NewSQLKVStore(testutil.NewTestDB(t))
	repo := NewKVCursorRepo(kv)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Set(ctx, 7))
	n, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.NoError(t, kv.Put(ctx, ActiveDayKey, "seven"))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, repo.Delete(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
