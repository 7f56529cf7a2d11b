package interaction

import (
	"math"
	"time"

	"github.com/alexanderramin/syllabus/internal/clock"
)

// Direction is a normalized navigation step.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Event is a raw input event fed to the Normalizer.
type Event interface {
	isEvent()
}

// WheelEvent is a pointer wheel tick. Positive DeltaY scrolls forward.
type WheelEvent struct {
	DeltaY float64
	Target RegionID
}

// TouchStartEvent begins a swipe at screen coordinate Y.
type TouchStartEvent struct {
	Y      float64
	Target RegionID
}

// TouchEndEvent completes a swipe at screen coordinate Y.
type TouchEndEvent struct {
	Y float64
}

// KeyEvent is a discrete directional key press. Like a swipe it is a single
// gesture, so no cooldown applies.
type KeyEvent struct {
	Direction Direction
	Target    RegionID
}

func (WheelEvent) isEvent()      {}
func (TouchStartEvent) isEvent() {}
func (TouchEndEvent) isEvent()   {}
func (KeyEvent) isEvent()        {}

// IgnoreReason explains why an event produced no step.
type IgnoreReason string

const (
	IgnoredNone        IgnoreReason = ""
	IgnoredRegion      IgnoreReason = "nested_region"
	IgnoredGuard       IgnoreReason = "guard"
	IgnoredCooldown    IgnoreReason = "cooldown"
	IgnoredNoise       IgnoreReason = "below_noise_floor"
	IgnoredShortSwipe  IgnoreReason = "short_swipe"
	IgnoredNoTouch     IgnoreReason = "no_touch_start"
	IgnoredTouchRecord IgnoreReason = "touch_recorded"
	IgnoredUnknown     IgnoreReason = "unknown_event"
)

// Result is either a Step or an ignored outcome. Ignoring is not an error.
type Result struct {
	Step   Direction
	Reason IgnoreReason
}

// Accepted reports whether the event produced a step.
func (r Result) Accepted() bool { return r.Reason == IgnoredNone && r.Step != 0 }

func ignored(reason IgnoreReason) Result { return Result{Reason: reason} }

// Guard reports whether an overlay-like condition currently suppresses
// outer navigation.
type Guard func() bool

// GestureConfig holds the normalizer thresholds.
type GestureConfig struct {
	WheelCooldown   time.Duration
	WheelNoiseFloor float64
	SwipeThreshold  float64
}

// DefaultGestureConfig returns the standard thresholds.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		WheelCooldown:   400 * time.Millisecond,
		WheelNoiseFloor: 5,
		SwipeThreshold:  50,
	}
}

// Normalizer converts raw wheel/touch/key events into unitless steps.
// It is not safe for concurrent use; the Controller serializes access.
type Normalizer struct {
	cfg     GestureConfig
	clock   clock.Clock
	regions *Regions
	guards  []Guard

	lastAccepted time.Time
	hasAccepted  bool
	touchStartY  *float64
}

// NewNormalizer builds a normalizer. A nil regions registry owns nothing.
func NewNormalizer(cfg GestureConfig, clk clock.Clock, regions *Regions, guards ...Guard) *Normalizer {
	if regions == nil {
		regions = NewRegions()
	}
	return &Normalizer{cfg: cfg, clock: clk, regions: regions, guards: guards}
}

// AddGuard appends a suppression condition.
func (n *Normalizer) AddGuard(g Guard) {
	n.guards = append(n.guards, g)
}

// Normalize classifies one event.
func (n *Normalizer) Normalize(ev Event) Result {
	switch e := ev.(type) {
	case WheelEvent:
		return n.wheel(e)
	case TouchStartEvent:
		return n.touchStart(e)
	case TouchEndEvent:
		return n.touchEnd(e)
	case KeyEvent:
		if r, blocked := n.blocked(e.Target); blocked {
			return r
		}
		if e.Direction == 0 {
			return ignored(IgnoredNoise)
		}
		return Result{Step: sign(float64(e.Direction))}
	default:
		return ignored(IgnoredUnknown)
	}
}

func (n *Normalizer) wheel(e WheelEvent) Result {
	if r, blocked := n.blocked(e.Target); blocked {
		return r
	}
	now := n.clock.Now()
	if n.hasAccepted && now.Sub(n.lastAccepted) < n.cfg.WheelCooldown {
		return ignored(IgnoredCooldown)
	}
	if math.Abs(e.DeltaY) <= n.cfg.WheelNoiseFloor {
		return ignored(IgnoredNoise)
	}
	n.lastAccepted = now
	n.hasAccepted = true
	return Result{Step: sign(e.DeltaY)}
}

func (n *Normalizer) touchStart(e TouchStartEvent) Result {
	if r, blocked := n.blocked(e.Target); blocked {
		n.touchStartY = nil
		return r
	}
	y := e.Y
	n.touchStartY = &y
	return ignored(IgnoredTouchRecord)
}

func (n *Normalizer) touchEnd(e TouchEndEvent) Result {
	start := n.touchStartY
	n.touchStartY = nil
	if n.guarded() {
		return ignored(IgnoredGuard)
	}
	if start == nil {
		return ignored(IgnoredNoTouch)
	}
	delta := *start - e.Y
	if math.Abs(delta) <= n.cfg.SwipeThreshold {
		return ignored(IgnoredShortSwipe)
	}
	return Result{Step: sign(delta)}
}

func (n *Normalizer) blocked(target RegionID) (Result, bool) {
	if n.regions.OwnsScroll(target) {
		return ignored(IgnoredRegion), true
	}
	if n.guarded() {
		return ignored(IgnoredGuard), true
	}
	return Result{}, false
}

func (n *Normalizer) guarded() bool {
	for _, g := range n.guards {
		if g != nil && g() {
			return true
		}
	}
	return false
}

func sign(v float64) Direction {
	if v > 0 {
		return Forward
	}
	return Backward
}
