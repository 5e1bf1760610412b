// Package teatest drives bubbletea models in tests without a tea.Program.
//
// Messages go straight to Update and every returned Cmd is run inline until
// the model settles. Cmds that block (cursor blinks, tickers) are abandoned
// after a short timeout so a test never waits on a timer.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxChain bounds how many Cmds one message may trigger in sequence.
const maxChain = 100

// defaultCmdTimeout covers service calls against an in-memory database.
// Cursor blink Cmds block for ~530ms and are dropped.
const defaultCmdTimeout = 200 * time.Millisecond

// Driver owns a model and feeds it messages synchronously.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once the model returns tea.Quit.
	Quitting bool

	cmdTimeout time.Duration
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout changes how long a single Cmd may run before it is dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: defaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and settles the model. Messages after a quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

// namedKeys maps the names used in Press to their key types.
var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+u":    tea.KeyCtrlU,
}

// Press sends each key in turn. Names in namedKeys become special keys,
// anything else is sent as typed runes.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		if kt, ok := namedKeys[k]; ok {
			d.Send(tea.KeyMsg{Type: kt})
			continue
		}
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Press("enter")
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Press("esc")
}

func (d *Driver) PressLeft() {
	d.T.Helper()
	d.Press("left")
}

func (d *Driver) PressRight() {
	d.T.Helper()
	d.Press("right")
}

// Type sends s one rune at a time, the way a user types into a text input.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// View is the rendered model with terminal styling removed.
func (d *Driver) View() string {
	return ansiSeq.ReplaceAllString(d.Model.View(), "")
}

// AssertViewContains fails the test for every substring missing from View.
func (d *Driver) AssertViewContains(subs ...string) {
	d.T.Helper()
	view := d.View()
	for _, s := range subs {
		if !strings.Contains(view, s) {
			d.T.Errorf("view does not contain %q:\n%s", s, view)
		}
	}
}

// AssertViewLacks fails the test for every substring present in View.
func (d *Driver) AssertViewLacks(subs ...string) {
	d.T.Helper()
	view := d.View()
	for _, s := range subs {
		if strings.Contains(view, s) {
			d.T.Errorf("view unexpectedly contains %q:\n%s", s, view)
		}
	}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxChain {
		d.T.Logf("teatest: stopped after %d chained commands", maxChain)
		return
	}

	msg, ok := d.exec(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.run(next, depth+1)
	}
}

// exec runs cmd on its own goroutine and gives up after the timeout.
func (d *Driver) exec(cmd tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(d.cmdTimeout):
		return nil, false
	}
}

// isBlink matches the unexported blink messages of bubbles/cursor.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
