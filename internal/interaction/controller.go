package interaction

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/alexanderramin/syllabus/internal/domain"
	"go.uber.org/zap"
)

// Options configures a Controller.
type Options struct {
	Clock            clock.Clock
	Input            domain.InputCapability
	Layout           Layout
	Gesture          GestureConfig
	UnfocusDelay     time.Duration
	FeedbackLifetime time.Duration
	FeedbackCap      int
	ShowOnboarding   bool

	// OverlayOpen reports whether an external overlay (the report view)
	// currently covers the stack. It is consulted as a gesture guard.
	OverlayOpen func() bool

	// OnChange is invoked after timer-driven state changes so the
	// presentation layer can re-render.
	OnChange func()

	Logger *zap.Logger
}

// DefaultOptions returns options for a pointer session on a wide layout.
func DefaultOptions() Options {
	return Options{
		Clock:            clock.Real{},
		Input:            domain.InputPointer,
		Layout:           WideLayout,
		Gesture:          DefaultGestureConfig(),
		UnfocusDelay:     DefaultUnfocusDelay,
		FeedbackLifetime: DefaultFeedbackLifetime,
		FeedbackCap:      DefaultFeedbackCap,
	}
}

// Point is a pointer position normalized to [0,1] on both axes.
type Point struct {
	X, Y float64
}

// SlotView is the per-domain output consumed by the presentation layer.
type SlotView struct {
	Domain        domain.Domain
	Index         int
	Params        SlotParams
	Active        bool
	HoverEligible bool
}

// GuideView is the onboarding state in a snapshot.
type GuideView struct {
	Open   bool
	Step   int
	Total  int
	Target GuideTarget
}

// Snapshot is a read-only copy of everything the presentation layer renders.
type Snapshot struct {
	Index             float64
	Total             int
	Slots             []SlotView
	FocusedDomainID   string
	FocusPending      bool
	Selection         []domain.Module
	Tokens            []Token
	Detail            *domain.Module
	PanelOpen         bool
	Guide             GuideView
	Pointer           Point
	BackgroundFocused bool
	Dimmed            bool
	Layout            Layout
	Input             domain.InputCapability
}

// Controller owns all interaction state of one session. Every exported
// method is atomic with respect to the others.
type Controller struct {
	mu      sync.Mutex
	catalog *domain.Catalog
	log     *zap.Logger
	input   domain.InputCapability
	layout  Layout
	overlay func() bool

	regions   *Regions
	gestures  *Normalizer
	nav       *Navigator
	focus     FocusModel
	selection *Selection
	feedback  *FeedbackRegistry
	guide     *Guide

	detail    *domain.Module
	panelOpen bool
	pointer   Point
	closed    bool
}

// NewController builds a controller over an immutable catalog.
func NewController(catalog *domain.Catalog, opts Options) (*Controller, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("controller needs a non-empty catalog")
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Input == "" {
		opts.Input = domain.InputPointer
	}
	if opts.Layout.Kind == "" {
		opts.Layout = WideLayout
	}
	if opts.Gesture == (GestureConfig{}) {
		opts.Gesture = DefaultGestureConfig()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	nav, err := NewNavigator(catalog.Len())
	if err != nil {
		return nil, err
	}

	c := &Controller{
		catalog:   catalog,
		log:       log,
		input:     opts.Input,
		layout:    opts.Layout,
		overlay:   opts.OverlayOpen,
		regions:   NewRegions(),
		nav:       nav,
		focus:     NewFocusModel(opts.Input, opts.Clock, opts.UnfocusDelay, opts.OnChange),
		selection: NewSelection(),
		feedback:  NewFeedbackRegistry(opts.Clock, opts.FeedbackLifetime, opts.FeedbackCap, opts.OnChange),
		guide:     NewGuide(opts.ShowOnboarding),
		pointer:   Point{X: 0.5, Y: 0.5},
	}
	c.gestures = NewNormalizer(opts.Gesture, opts.Clock, c.regions,
		func() bool { return c.detail != nil },
		func() bool { return c.guide.Open() },
		func() bool { return c.overlay != nil && c.overlay() },
	)
	return c, nil
}

// Regions exposes the region registry so the presentation layer can declare
// nested scroll containers.
func (c *Controller) Regions() *Regions { return c.regions }

// Catalog returns the immutable catalog.
func (c *Controller) Catalog() *domain.Catalog { return c.catalog }

// Selection returns the session's selection set.
func (c *Controller) Selection() *Selection { return c.selection }

// HandleEvent normalizes a raw event and applies the resulting step.
// Moving to a different slot collapses any focused domain.
func (c *Controller) HandleEvent(ev Event) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ignored(IgnoredGuard)
	}

	res := c.gestures.Normalize(ev)
	if !res.Accepted() {
		return res
	}
	before := c.nav.Index()
	next := c.nav.Apply(res.Step)
	if float64(next) != before {
		c.focus.Clear()
		c.log.Debug("navigation step",
			zap.Int("direction", int(res.Step)),
			zap.Int("index", next))
	}
	return res
}

// HoverEnter requests focus for a domain under the pointer. Ignored for
// slots too far from the current index and on touch sessions, where only
// Activate changes focus.
func (c *Controller) HoverEnter(domainID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.input == domain.InputTouch {
		return false
	}
	slot, ok := c.catalog.IndexOf(domainID)
	if !ok || !HoverEligible(slot, c.nav.Index()) {
		return false
	}
	c.focus.RequestFocus(domainID)
	return true
}

// HoverLeave starts the delayed collapse. No-op on touch sessions.
func (c *Controller) HoverLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.input == domain.InputTouch {
		return
	}
	c.focus.RequestUnfocus()
}

// Activate is a discrete tap or click on a domain. On touch sessions it
// toggles focus; on pointer sessions it focuses like a hover.
func (c *Controller) Activate(domainID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	slot, ok := c.catalog.IndexOf(domainID)
	if !ok || c.closed || math.Abs(float64(slot)-c.nav.Index()) > InteractiveMaxDistance {
		return false
	}
	c.focus.RequestFocus(domainID)
	return true
}

// AddToSelection adds a catalog module and spawns a feedback token at the
// given origin. The token is spawned even for a repeated add, matching the
// acknowledgment the user sees; the selection itself stays deduplicated.
func (c *Controller) AddToSelection(moduleID string, originX, originY float64) (added bool, tok Token, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.catalog.Module(moduleID)
	if !ok {
		return false, Token{}, fmt.Errorf("unknown module %q", moduleID)
	}
	added = c.selection.Add(m)
	tok, spawned := c.feedback.Spawn(originX, originY)
	if !spawned {
		c.log.Debug("feedback token cap reached", zap.String("module", moduleID))
	}
	return added, tok, nil
}

// RemoveFromSelection removes a module by ID; absent IDs are a no-op.
func (c *Controller) RemoveFromSelection(moduleID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	return c.selection.Remove(moduleID)
}

// OpenDetail shows a module's detail view, which suppresses navigation.
func (c *Controller) OpenDetail(moduleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.catalog.Module(moduleID)
	if !ok {
		return fmt.Errorf("unknown module %q", moduleID)
	}
	c.detail = &m
	return nil
}

// CloseDetail hides the detail view.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
}

// ToggleSelectionPanel opens or closes the selection panel.
func (c *Controller) ToggleSelectionPanel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelOpen = !c.panelOpen
	return c.panelOpen
}

// NextGuideStep advances the onboarding guide.
func (c *Controller) NextGuideStep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guide.Next()
}

// SkipGuide closes the onboarding guide.
func (c *Controller) SkipGuide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guide.Skip()
}

// PointerMoved records the pointer position within a width x height surface.
func (c *Controller) PointerMoved(x, y, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pointer = Point{X: clamp01(x / width), Y: clamp01(y / height)}
}

// SetLayout switches breakpoint constants; layout is presentational and may
// change mid-session.
func (c *Controller) SetLayout(l Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layout = l
}

// Snapshot copies the current state for one render tick.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.nav.Index()
	total := c.nav.Total()
	focusedID, focused := c.focus.Active()

	slots := make([]SlotView, total)
	for i := 0; i < total; i++ {
		d := c.catalog.At(i)
		active := DisplayActive(i, idx, focused && focusedID == d.ID)
		slots[i] = SlotView{
			Domain:        d,
			Index:         i,
			Params:        SlotVisual(i, idx, total, active, c.layout),
			Active:        active,
			HoverEligible: HoverEligible(i, idx),
		}
	}

	step, target := c.guide.Step()
	var detail *domain.Module
	if c.detail != nil {
		d := *c.detail
		detail = &d
	}
	overlay := c.overlay != nil && c.overlay()

	return Snapshot{
		Index:           idx,
		Total:           total,
		Slots:           slots,
		FocusedDomainID: focusedID,
		FocusPending:    c.focus.Pending(),
		Selection:       c.selection.Items(),
		Tokens:          c.feedback.Tokens(),
		Detail:          detail,
		PanelOpen:       c.panelOpen,
		Guide: GuideView{
			Open:   c.guide.Open(),
			Step:   step,
			Total:  len(GuideSteps),
			Target: target,
		},
		Pointer:           c.pointer,
		BackgroundFocused: focused || detail != nil || overlay,
		Dimmed:            detail != nil || overlay,
		Layout:            c.layout,
		Input:             c.input,
	}
}

// Close cancels the pending focus timer and drops every feedback token.
// The controller ignores input afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.focus.Clear()
	c.feedback.Close()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
