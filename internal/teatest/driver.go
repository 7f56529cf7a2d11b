// Package teatest drives bubbletea models synchronously in tests.
//
// Messages go straight to Update and the Cmds they return are run inline.
// A Cmd that does not return within a short window (a tick, a channel
// listener, a cursor blink) is dropped, so tests never wait on timers.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds how many messages one Send may process.
const MaxSteps = 200

// cmdTimeout is how long a Cmd may run before it is treated as blocking.
const cmdTimeout = 10 * time.Millisecond

// Driver feeds input to a tea.Model and runs its Cmds until quiescent.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records that tea.Quit was produced. Input sent afterwards is
	// dropped, as it would be by a real program.
	Quitting bool
}

// Option configures a Driver before Init runs.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg of w by h cells. Its Cmds are ignored.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and every message it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(nil, d.Model.Init())
}

// Send delivers msg and runs every message it leads to.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.run([]tea.Msg{msg}, nil)
}

// SendKey delivers a key message.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

func (d *Driver) key(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter()    { d.T.Helper(); d.key(tea.KeyEnter) }
func (d *Driver) PressEsc()      { d.T.Helper(); d.key(tea.KeyEsc) }
func (d *Driver) PressCtrlC()    { d.T.Helper(); d.key(tea.KeyCtrlC) }
func (d *Driver) PressUp()       { d.T.Helper(); d.key(tea.KeyUp) }
func (d *Driver) PressDown()     { d.T.Helper(); d.key(tea.KeyDown) }
func (d *Driver) PressTab()      { d.T.Helper(); d.key(tea.KeyTab) }
func (d *Driver) PressShiftTab() { d.T.Helper(); d.key(tea.KeyShiftTab) }

func (d *Driver) mouse(x, y int, b tea.MouseButton, a tea.MouseAction) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: b, Action: a})
}

// WheelDown sends one wheel notch over cell (x, y).
func (d *Driver) WheelDown(x, y int) {
	d.T.Helper()
	d.mouse(x, y, tea.MouseButtonWheelDown, tea.MouseActionPress)
}

// WheelUp sends one wheel notch over cell (x, y).
func (d *Driver) WheelUp(x, y int) {
	d.T.Helper()
	d.mouse(x, y, tea.MouseButtonWheelUp, tea.MouseActionPress)
}

// Click presses the left button on cell (x, y).
func (d *Driver) Click(x, y int) {
	d.T.Helper()
	d.mouse(x, y, tea.MouseButtonLeft, tea.MouseActionPress)
}

// MoveTo reports pointer motion onto cell (x, y).
func (d *Driver) MoveTo(x, y int) {
	d.T.Helper()
	d.mouse(x, y, tea.MouseButtonNone, tea.MouseActionMotion)
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

// run processes msgs and cmds breadth-first until nothing is left. Batches
// are flattened into the command queue.
func (d *Driver) run(msgs []tea.Msg, cmd tea.Cmd) {
	d.T.Helper()
	var cmds []tea.Cmd
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	for steps := 0; len(msgs) > 0 || len(cmds) > 0; steps++ {
		if steps >= MaxSteps {
			d.T.Logf("teatest: stopped after %d steps", MaxSteps)
			return
		}
		if len(msgs) == 0 {
			msgs = append(msgs, execWithTimeout(cmds[0]))
			cmds = cmds[1:]
		}
		msg := msgs[0]
		msgs = msgs[1:]

		switch m := msg.(type) {
		case nil:
		case tea.BatchMsg:
			for _, c := range m {
				if c != nil {
					cmds = append(cmds, c)
				}
			}
		case tea.QuitMsg:
			d.Quitting = true
			d.Model, _ = d.Model.Update(m)
			return
		default:
			if isBlink(m) {
				continue
			}
			var next tea.Cmd
			d.Model, next = d.Model.Update(m)
			if next != nil {
				cmds = append(cmds, next)
			}
		}
	}
}

// execWithTimeout returns nil for a Cmd still running after cmdTimeout.
func execWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches bubbles' cursor blink messages, which re-arm a timer on
// every delivery.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
