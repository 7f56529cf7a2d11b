package interaction

import (
	"sync"
	"time"

	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/alexanderramin/syllabus/internal/domain"
)

// DefaultUnfocusDelay is the hover hysteresis before a focused domain collapses.
const DefaultUnfocusDelay = 3 * time.Second

// FocusModel is the session-wide single-focus state machine. Both
// strategies honor the same contract: at most one domain is focused, and
// every request supersedes any earlier scheduled transition.
type FocusModel interface {
	RequestFocus(domainID string)
	RequestUnfocus()
	// Clear unfocuses immediately and cancels any scheduled transition.
	Clear()
	Active() (domainID string, ok bool)
	// Pending reports whether a deactivation is scheduled.
	Pending() bool
}

// NewFocusModel selects the strategy for the session's input capability.
// onChange, if set, is called after a timer-driven transition.
func NewFocusModel(input domain.InputCapability, clk clock.Clock, delay time.Duration, onChange func()) FocusModel {
	if input == domain.InputTouch {
		return &TapFocus{}
	}
	return NewHoverFocus(clk, delay, onChange)
}

// HoverFocus activates instantly and deactivates after a delay, so the
// pointer can leave the expanded region briefly without collapsing it.
type HoverFocus struct {
	mu       sync.Mutex
	clock    clock.Clock
	delay    time.Duration
	onChange func()

	active string
	timer  clock.Timer
	gen    uint64 // invalidates callbacks of superseded timers
}

// NewHoverFocus builds the pointer strategy.
func NewHoverFocus(clk clock.Clock, delay time.Duration, onChange func()) *HoverFocus {
	if delay <= 0 {
		delay = DefaultUnfocusDelay
	}
	return &HoverFocus{clock: clk, delay: delay, onChange: onChange}
}

func (f *HoverFocus) RequestFocus(domainID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelLocked()
	f.active = domainID
}

func (f *HoverFocus) RequestUnfocus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelLocked()
	if f.active == "" {
		return
	}
	gen := f.gen
	f.timer = f.clock.AfterFunc(f.delay, func() { f.expire(gen) })
}

func (f *HoverFocus) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelLocked()
	f.active = ""
}

func (f *HoverFocus) Active() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.active != ""
}

func (f *HoverFocus) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timer != nil
}

func (f *HoverFocus) expire(gen uint64) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.active = ""
	f.timer = nil
	f.mu.Unlock()

	if f.onChange != nil {
		f.onChange()
	}
}

func (f *HoverFocus) cancelLocked() {
	f.gen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// TapFocus toggles focus on discrete activation; hover intent cannot be
// inferred without a pointer, so there is no timer.
type TapFocus struct {
	mu     sync.Mutex
	active string
}

// RequestFocus toggles: tapping the focused domain collapses it, tapping
// any other domain moves focus there.
func (f *TapFocus) RequestFocus(domainID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == domainID {
		f.active = ""
		return
	}
	f.active = domainID
}

func (f *TapFocus) RequestUnfocus() { f.Clear() }

func (f *TapFocus) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = ""
}

func (f *TapFocus) Active() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.active != ""
}

func (f *TapFocus) Pending() bool { return false }

var (
	_ FocusModel = (*HoverFocus)(nil)
	_ FocusModel = (*TapFocus)(nil)
)
