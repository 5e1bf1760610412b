package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/grindfit/internal/db"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/repository"
	"github.com/alexanderramin/grindfit/internal/testutil"
)

// fakePlanner returns NewGeneratedDays for the profile's frequency unless
// err or days is set. A non-nil gate blocks each call until it is closed.
type fakePlanner struct {
	mu       sync.Mutex
	days     []domain.GeneratedDay
	err      error
	gate     chan struct{}
	calls    int
	profiles []domain.UserProfile
}

func (f *fakePlanner) GeneratePlan(ctx context.Context, profile domain.UserProfile) ([]domain.GeneratedDay, error) {
	f.mu.Lock()
	f.calls++
	f.profiles = append(f.profiles, profile)
	gate, days, err := f.gate, f.days, f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if days != nil {
		return days, nil
	}
	return testutil.NewGeneratedDays(profile.TotalDays()), nil
}

func (f *fakePlanner) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakePlanner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type programFixture struct {
	db      *sql.DB
	kv      *repository.SQLKVStore
	planner *fakePlanner
	svc     ProgramService
}

func newProgramFixture(t *testing.T) *programFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &programFixture{
		db:      database,
		kv:      repository.NewSQLKVStore(database),
		planner: &fakePlanner{},
	}
	f.svc = f.build(testutil.NewTestUoW(database))
	return f
}

// build returns a fresh service over the fixture's database, as a new
// process would see it.
func (f *programFixture) build(uow db.UnitOfWork) ProgramService {
	return NewProgramService(
		repository.NewKVProgramRepo(f.kv),
		repository.NewKVCursorRepo(f.kv),
		uow,
		f.planner,
		WithClock(func() time.Time { return testutil.Anchor }),
	)
}

type fakeIconGenerator struct {
	mu    sync.Mutex
	icons map[domain.TaskType]string
	errs  map[domain.TaskType]error
	calls []domain.TaskType
	gate  chan struct{}
}

func (f *fakeIconGenerator) GenerateIcon(ctx context.Context, t domain.TaskType) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, t)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err := f.errs[t]; err != nil {
		return "", err
	}
	return f.icons[t], nil
}

func (f *fakeIconGenerator) called() []domain.TaskType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TaskType(nil), f.calls...)
}
