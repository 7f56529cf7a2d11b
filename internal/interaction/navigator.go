package interaction

import (
	"fmt"
	"math"
)

// Navigator holds the bounded position over the ordered domain list.
type Navigator struct {
	index float64
	total int
}

// NewNavigator starts at index 0 over total slots.
func NewNavigator(total int) (*Navigator, error) {
	if total < 1 {
		return nil, fmt.Errorf("navigator needs at least one slot, got %d", total)
	}
	return &Navigator{total: total}, nil
}

// Apply rounds the current index, steps in dir, and clamps to
// [0, total-1]. Stepping past either boundary is a no-op.
func (n *Navigator) Apply(dir Direction) int {
	next := clampInt(int(math.Round(n.index))+int(dir), 0, n.total-1)
	n.index = float64(next)
	return next
}

// Index returns the current position.
func (n *Navigator) Index() float64 { return n.index }

// Total returns the slot count, fixed for the session.
func (n *Navigator) Total() int { return n.total }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
