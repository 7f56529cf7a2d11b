package interaction

import (
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/syllabus/internal/clock"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultFeedbackLifetime = 900 * time.Millisecond
	DefaultFeedbackCap      = 32
)

// Token is a short-lived "added to selection" marker.
type Token struct {
	ID        uint64
	OriginX   float64
	OriginY   float64
	CreatedAt time.Time
}

// FeedbackRegistry holds self-expiring tokens. Lifetime is wall-clock and
// independent of any other state change; the number of live tokens is
// bounded by a weighted semaphore.
type FeedbackRegistry struct {
	mu       sync.Mutex
	clock    clock.Clock
	lifetime time.Duration
	slots    *semaphore.Weighted
	onChange func()

	nextID uint64
	tokens map[uint64]Token
	timers map[uint64]clock.Timer
}

// NewFeedbackRegistry builds a registry. Non-positive lifetime or capacity
// fall back to defaults.
func NewFeedbackRegistry(clk clock.Clock, lifetime time.Duration, capacity int, onChange func()) *FeedbackRegistry {
	if lifetime <= 0 {
		lifetime = DefaultFeedbackLifetime
	}
	if capacity <= 0 {
		capacity = DefaultFeedbackCap
	}
	return &FeedbackRegistry{
		clock:    clk,
		lifetime: lifetime,
		slots:    semaphore.NewWeighted(int64(capacity)),
		onChange: onChange,
		tokens:   make(map[uint64]Token),
		timers:   make(map[uint64]clock.Timer),
	}
}

// Spawn creates a token at the given origin and schedules its removal.
// It reports false when the registry is at capacity.
func (r *FeedbackRegistry) Spawn(originX, originY float64) (Token, bool) {
	if !r.slots.TryAcquire(1) {
		return Token{}, false
	}

	r.mu.Lock()
	r.nextID++
	tok := Token{
		ID:        r.nextID,
		OriginX:   originX,
		OriginY:   originY,
		CreatedAt: r.clock.Now(),
	}
	r.tokens[tok.ID] = tok
	r.timers[tok.ID] = r.clock.AfterFunc(r.lifetime, func() { r.expire(tok.ID) })
	r.mu.Unlock()

	return tok, true
}

// Remove deletes a token. Removing an absent token is a no-op.
func (r *FeedbackRegistry) Remove(id uint64) bool {
	r.mu.Lock()
	removed := r.removeLocked(id)
	r.mu.Unlock()
	return removed
}

// Tokens returns the live tokens ordered by creation.
func (r *FeedbackRegistry) Tokens() []Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of live tokens.
func (r *FeedbackRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

// Close removes every token and stops their timers.
func (r *FeedbackRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.tokens {
		r.removeLocked(id)
	}
}

func (r *FeedbackRegistry) expire(id uint64) {
	r.mu.Lock()
	removed := r.removeLocked(id)
	r.mu.Unlock()

	if removed && r.onChange != nil {
		r.onChange()
	}
}

func (r *FeedbackRegistry) removeLocked(id uint64) bool {
	if _, ok := r.tokens[id]; !ok {
		return false
	}
	delete(r.tokens, id)
	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
	r.slots.Release(1)
	return true
}
