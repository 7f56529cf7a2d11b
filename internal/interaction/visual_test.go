package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotVisual_ActiveSlot(t *testing.T) {
	p := SlotVisual(2, 2, 4, true, WideLayout)

	assert.Equal(t, 1.05, p.Scale)
	assert.Equal(t, 1.0, p.Opacity)
	assert.Equal(t, 100, p.Depth)
	assert.Equal(t, 0.0, p.OffsetPrimary)
	assert.Equal(t, -200.0, p.OffsetSecondary)
	assert.True(t, p.Interactive)
	assert.True(t, p.ContentVisible)
}

func TestSlotVisual_CurrentButInactive(t *testing.T) {
	p := SlotVisual(0, 0, 4, false, WideLayout)

	assert.Equal(t, 1.0, p.Scale)
	assert.InDelta(t, 0.45, p.Opacity, 1e-9)
	assert.True(t, p.Visible)
}

func TestSlotVisual_DistanceFalloff(t *testing.T) {
	p := SlotVisual(1, 0, 4, false, WideLayout)

	assert.InDelta(t, 0.72, p.Scale, 1e-9)
	assert.InDelta(t, 0.15, p.Opacity, 1e-9)
	assert.Equal(t, 70, p.Depth)
	assert.Equal(t, 140.0, p.OffsetPrimary)
	assert.Equal(t, -250.0, p.OffsetDepth)
	assert.False(t, p.Interactive)
	assert.False(t, p.ContentVisible)

	above := SlotVisual(0, 1, 4, false, CompactLayout)
	assert.Equal(t, -120.0, above.OffsetPrimary)
	assert.Equal(t, 0.0, above.OffsetSecondary)
}

func TestSlotVisual_FloorsAndNeverNegative(t *testing.T) {
	for slot := 0; slot < 20; slot++ {
		for _, cur := range []float64{0, 0.25, 3.5, 19} {
			p := SlotVisual(slot, cur, 20, false, WideLayout)
			assert.GreaterOrEqual(t, p.Opacity, 0.0)
			assert.GreaterOrEqual(t, p.Scale, 0.4)
		}
	}
	far := SlotVisual(10, 0, 20, false, WideLayout)
	assert.Equal(t, 0.0, far.Opacity)
	assert.Equal(t, 0.4, far.Scale)
	assert.False(t, far.Visible)
}

func TestSlotVisual_InteractiveThreshold(t *testing.T) {
	assert.True(t, SlotVisual(1, 0.4, 3, false, WideLayout).Interactive)
	assert.False(t, SlotVisual(1, 0.3, 3, false, WideLayout).Interactive)
}

func TestSlotVisual_IsPure(t *testing.T) {
	a := SlotVisual(3, 1.37, 6, false, WideLayout)
	b := SlotVisual(3, 1.37, 6, false, WideLayout)
	assert.Equal(t, a, b)
}

func TestSlotVisual_OutOfRangeSlot(t *testing.T) {
	assert.Equal(t, SlotParams{}, SlotVisual(5, 0, 4, false, WideLayout))
	assert.Equal(t, SlotParams{}, SlotVisual(0, 0, 0, false, WideLayout))
}

func TestHoverAndActiveEligibility(t *testing.T) {
	assert.True(t, HoverEligible(1, 0.6))
	assert.False(t, HoverEligible(1, 0.5))

	assert.True(t, DisplayActive(2, 2.3, true))
	assert.False(t, DisplayActive(2, 2.45, true))
	assert.False(t, DisplayActive(2, 2, false))
}

func TestEase(t *testing.T) {
	assert.Equal(t, 1.0, Ease(0, 1, 1))
	assert.InDelta(t, 0.5, Ease(0, 1, 0.5), 1e-9)
	assert.Equal(t, 1.0, Ease(0.999, 1, 0.5))
}
