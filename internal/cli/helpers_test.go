package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/intelligence"
	"github.com/alexanderramin/grindfit/internal/repository"
	"github.com/alexanderramin/grindfit/internal/service"
	"github.com/alexanderramin/grindfit/internal/testutil"
	"github.com/stretchr/testify/require"
)

type stubPlanner struct{ err error }

func (s stubPlanner) GeneratePlan(_ context.Context, p domain.UserProfile) ([]domain.GeneratedDay, error) {
	if s.err != nil {
		return nil, s.err
	}
	return testutil.NewGeneratedDays(p.TotalDays()), nil
}

type stubIcons struct{}

const stubSVG = `<svg xmlns="http://www.w3.org/2000/svg"><rect width="4" height="4"/></svg>`

func (stubIcons) GenerateIcon(_ context.Context, t domain.TaskType) (string, error) {
	if t == domain.TaskMindset {
		return "", nil
	}
	return intelligence.SVGDataURI(stubSVG), nil
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	return testAppWithPlanner(t, stubPlanner{})
}

func testAppWithPlanner(t *testing.T, planner intelligence.PlanGenerator) *App {
	t.Helper()
	app, _ := testAppWithStore(t, planner, stubIcons{})
	return app
}

// testAppWithStore also returns the key-value store behind the app so tests
// can plant stored values.
func testAppWithStore(t *testing.T, planner intelligence.PlanGenerator, icons intelligence.IconGenerator) (*App, repository.KVStore) {
	t.Helper()
	database := testutil.NewTestDB(t)
	kv := repository.NewSQLKVStore(database)
	clock := func() time.Time { return testutil.Anchor }

	return &App{
		Programs: service.NewProgramService(
			repository.NewKVProgramRepo(kv),
			repository.NewKVCursorRepo(kv),
			testutil.NewTestUoW(database),
			planner,
			service.WithClock(clock),
		),
		Icons:         service.NewIconService(repository.NewKVIconRepo(kv), icons),
		IsInteractive: func() bool { return false },
		Now:           clock,
	}, kv
}

// startArgs are the flags for a complete non-interactive onboarding.
var startArgs = []string{
	"start",
	"--name", "ada", "--gender", "female", "--birth-year", "1990",
	"--country", "portugal", "--goal", "Muscle Gain", "--level", "Beginner", "--days", "3",
}

func seedProgram(t *testing.T, app *App) domain.Program {
	t.Helper()
	_, err := executeCmd(t, app, startArgs...)
	require.NoError(t, err)
	p, err := app.Programs.Current(context.Background())
	require.NoError(t, err)
	return p
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, "", args...)
}

func executeCmdWithInput(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stripANSI(buf.String()), err
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
