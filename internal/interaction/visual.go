package interaction

import (
	"math"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Slot distance thresholds shared by the visual function and the controller.
const (
	InteractiveMaxDistance = 0.6 // beyond this the slot receives no pointer input
	HoverMaxDistance       = 0.5 // hover-focus is only honored closer than this
	ActiveMaxDistance      = 0.4 // a focused slot only renders as active closer than this
	ContentMaxDistance     = 0.3 // slot title/content only shown closer than this
)

// Layout carries the per-breakpoint constants.
type Layout struct {
	Kind          domain.LayoutKind
	SlotSpacing   float64 // primary-axis offset per unit of index distance
	DepthSpacing  float64 // recession per unit of index distance
	LateralOffset float64 // fixed secondary-axis shift of the whole stack
}

var (
	WideLayout    = Layout{Kind: domain.LayoutWide, SlotSpacing: 140, DepthSpacing: 250, LateralOffset: -200}
	CompactLayout = Layout{Kind: domain.LayoutCompact, SlotSpacing: 120, DepthSpacing: 250, LateralOffset: 0}
)

// LayoutFor maps a layout kind to its constants, defaulting to wide.
func LayoutFor(kind domain.LayoutKind) Layout {
	if kind == domain.LayoutCompact {
		return CompactLayout
	}
	return WideLayout
}

// SlotParams are the derived visual parameters of one domain slot.
type SlotParams struct {
	Scale           float64
	Opacity         float64
	Depth           int // draw/interaction priority, higher is frontmost
	OffsetPrimary   float64
	OffsetSecondary float64
	OffsetDepth     float64
	Visible         bool
	Interactive     bool
	ContentVisible  bool
}

// SlotVisual derives the visual parameters of slot given the current
// (possibly fractional) index. It is pure and safe to call every frame.
// Slots outside [0, total) yield the zero value.
func SlotVisual(slot int, current float64, total int, active bool, layout Layout) SlotParams {
	if total <= 0 || slot < 0 || slot >= total {
		return SlotParams{}
	}
	diff := float64(slot) - current
	absDiff := math.Abs(diff)

	scale := math.Max(0.4, 1-0.28*absDiff)
	opacity := math.Max(0, 0.45-0.3*absDiff)
	if active {
		scale = 1.05
		opacity = 1
	}

	return SlotParams{
		Scale:           scale,
		Opacity:         opacity,
		Depth:           100 - int(math.Round(30*absDiff)),
		OffsetPrimary:   diff * layout.SlotSpacing,
		OffsetSecondary: layout.LateralOffset,
		OffsetDepth:     -absDiff * layout.DepthSpacing,
		Visible:         opacity > 0,
		Interactive:     absDiff <= InteractiveMaxDistance,
		ContentVisible:  absDiff < ContentMaxDistance,
	}
}

// HoverEligible reports whether a pointer entering slot may request focus.
func HoverEligible(slot int, current float64) bool {
	return math.Abs(float64(slot)-current) < HoverMaxDistance
}

// DisplayActive reports whether a focused slot renders in its expanded state.
func DisplayActive(slot int, current float64, focused bool) bool {
	return focused && math.Abs(float64(slot)-current) < ActiveMaxDistance
}

// Ease moves from toward to by alpha in (0,1], snapping when close. The
// presentation layer uses it to animate its displayed index between frames.
func Ease(from, to, alpha float64) float64 {
	if alpha >= 1 {
		return to
	}
	next := from + (to-from)*alpha
	if math.Abs(to-next) < 0.005 {
		return to
	}
	return next
}
