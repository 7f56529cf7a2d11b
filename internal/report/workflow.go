// Package report implements the report workflow: the request/response
// contract with the report service, its transports, and the
// idle → pending → success|failure state machine the UI observes.
package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/alexanderramin/syllabus/internal/domain"
)

// State is a read-only snapshot of the workflow.
type State struct {
	Phase              domain.ReportPhase
	RequestID          string
	RequestedModuleIDs []string      // set while Pending
	Tiers              []domain.Tier // set on Success
	ActiveTab          int           // valid index into Tiers on Success
	Message            string        // set on Failure
}

// ActiveTier returns the selected tier, or false outside Success.
func (s State) ActiveTier() (domain.Tier, bool) {
	if s.Phase != domain.ReportSuccess || s.ActiveTab < 0 || s.ActiveTab >= len(s.Tiers) {
		return domain.Tier{}, false
	}
	return s.Tiers[s.ActiveTab], true
}

// Ticket identifies one accepted submission.
type Ticket struct {
	ID          string
	ModuleIDs   []string
	RequestedAt time.Time
	gen         uint64
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithObserver sets the observer notified when a run completes.
func WithObserver(o Observer) Option { return func(w *Workflow) { w.observer = o } }

// WithClock sets the clock used to stamp submissions.
func WithClock(c clock.Clock) Option { return func(w *Workflow) { w.clock = c } }

// WithLogger sets the workflow logger.
func WithLogger(l *zap.Logger) Option { return func(w *Workflow) { w.log = l } }

// WithOnChange registers a callback invoked after every state change,
// outside the workflow lock.
func WithOnChange(f func()) Option { return func(w *Workflow) { w.onChange = f } }

// Workflow owns the report state for one session. At most one request is
// in flight; responses for a superseded request are discarded.
type Workflow struct {
	transport Transport
	observer  Observer
	clock     clock.Clock
	log       *zap.Logger
	onChange  func()

	mu     sync.Mutex
	state  State
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewWorkflow creates an idle workflow issuing requests through t.
func NewWorkflow(t Transport, opts ...Option) *Workflow {
	w := &Workflow{
		transport: t,
		observer:  NoopObserver{},
		clock:     clock.Real{},
		log:       zap.NewNop(),
		state:     State{Phase: domain.ReportIdle},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.observer == nil {
		w.observer = NoopObserver{}
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}
	return w
}

// Begin moves the workflow to Pending for ids. It refuses (returns false)
// when ids is empty, the phase is neither Idle nor Failure, or the workflow
// is closed.
func (w *Workflow) Begin(ids []string) (Ticket, bool) {
	w.mu.Lock()
	if w.closed || len(ids) == 0 || !canSubmitFrom(w.state.Phase) {
		w.mu.Unlock()
		return Ticket{}, false
	}
	w.gen++
	t := Ticket{
		ID:          uuid.NewString(),
		ModuleIDs:   append([]string(nil), ids...),
		RequestedAt: w.clock.Now(),
		gen:         w.gen,
	}
	w.state = State{
		Phase:              domain.ReportPending,
		RequestID:          t.ID,
		RequestedModuleIDs: t.ModuleIDs,
	}
	w.mu.Unlock()

	w.log.Debug("report submitted", zap.String("request_id", t.ID), zap.Strings("modules", t.ModuleIDs))
	w.notify()
	return t, true
}

func canSubmitFrom(p domain.ReportPhase) bool {
	return p == domain.ReportIdle || p == domain.ReportFailure
}

// Run issues the request for t and applies its outcome. It blocks until the
// transport returns.
func (w *Workflow) Run(ctx context.Context, t Ticket) {
	resp, err := w.transport.Generate(ctx, Request{ID: t.ID, ModuleIDs: t.ModuleIDs})
	w.complete(t, resp, err)
}

// Submit begins a request and runs it in the background. The returned
// channel closes once the outcome has been applied. ok is false when the
// submission was refused.
func (w *Workflow) Submit(ctx context.Context, ids []string) (done <-chan struct{}, ok bool) {
	t, ok := w.Begin(ids)
	if !ok {
		return nil, false
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	if w.gen != t.gen {
		// Reset or Close won the race before the request started.
		w.mu.Unlock()
		cancel()
		return nil, false
	}
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	ch := make(chan struct{})
	go func() {
		defer w.wg.Done()
		defer close(ch)
		defer cancel()
		w.Run(runCtx, t)
	}()
	return ch, true
}

func (w *Workflow) complete(t Ticket, resp *Response, err error) {
	event := RunEvent{
		RequestID:   t.ID,
		RequestedAt: t.RequestedAt,
		ModuleIDs:   t.ModuleIDs,
		Success:     err == nil,
		ErrorCode:   errorCode(err),
	}
	if err == nil && resp == nil {
		resp = &Response{}
	}
	if err == nil {
		event.TierCount = len(resp.Tiers)
		event.LatencyMs = resp.LatencyMs
	} else {
		event.Message = FailureMessage(err)
		event.LatencyMs = w.clock.Now().Sub(t.RequestedAt).Milliseconds()
	}

	w.mu.Lock()
	if t.gen != w.gen || w.state.Phase != domain.ReportPending {
		w.mu.Unlock()
		event.Stale = true
		w.observer.OnRunComplete(event)
		return
	}
	w.cancel = nil
	if err == nil && len(resp.Tiers) == 0 {
		err = ErrMalformed
		event.Success = false
		event.ErrorCode = errorCode(err)
		event.Message = FailureMessage(err)
	}
	if err == nil {
		w.state = State{
			Phase:     domain.ReportSuccess,
			RequestID: t.ID,
			Tiers:     resp.Tiers,
		}
	} else {
		w.state = State{
			Phase:     domain.ReportFailure,
			RequestID: t.ID,
			Message:   event.Message,
		}
	}
	w.mu.Unlock()

	w.observer.OnRunComplete(event)
	w.notify()
}

// SelectTab chooses the displayed tier. Out-of-range indices and calls
// outside Success are ignored.
func (w *Workflow) SelectTab(index int) bool {
	w.mu.Lock()
	if w.state.Phase != domain.ReportSuccess || index < 0 || index >= len(w.state.Tiers) {
		w.mu.Unlock()
		return false
	}
	changed := w.state.ActiveTab != index
	w.state.ActiveTab = index
	w.mu.Unlock()

	if changed {
		w.notify()
	}
	return true
}

// Reset returns to Idle. A pending request is canceled and its response,
// should it still arrive, is discarded.
func (w *Workflow) Reset() {
	w.mu.Lock()
	if w.state.Phase == domain.ReportIdle {
		w.mu.Unlock()
		return
	}
	w.gen++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.state = State{Phase: domain.ReportIdle}
	w.mu.Unlock()

	w.notify()
}

// Close cancels any in-flight request and waits for its goroutine.
func (w *Workflow) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.gen++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// State returns a snapshot of the workflow.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.state
	s.RequestedModuleIDs = append([]string(nil), s.RequestedModuleIDs...)
	s.Tiers = append([]domain.Tier(nil), s.Tiers...)
	return s
}

// Phase returns the current phase.
func (w *Workflow) Phase() domain.ReportPhase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Phase
}

// OverlayOpen reports whether a result or failure is on screen.
func (w *Workflow) OverlayOpen() bool {
	p := w.Phase()
	return p == domain.ReportSuccess || p == domain.ReportFailure
}

func (w *Workflow) notify() {
	if w.onChange != nil {
		w.onChange()
	}
}
