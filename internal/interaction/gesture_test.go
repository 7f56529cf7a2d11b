package interaction

import (
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/stretchr/testify/assert"
)

func newTestNormalizer(guards ...Guard) (*Normalizer, *clock.Fake, *Regions) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	regions := NewRegions()
	return NewNormalizer(DefaultGestureConfig(), clk, regions, guards...), clk, regions
}

func TestNormalizer_WheelDirectionFromSign(t *testing.T) {
	n, clk, _ := newTestNormalizer()

	res := n.Normalize(WheelEvent{DeltaY: 120})
	assert.True(t, res.Accepted())
	assert.Equal(t, Forward, res.Step)

	clk.Advance(time.Second)
	res = n.Normalize(WheelEvent{DeltaY: -40})
	assert.True(t, res.Accepted())
	assert.Equal(t, Backward, res.Step)
}

func TestNormalizer_WheelCooldownSwallowsBurst(t *testing.T) {
	n, clk, _ := newTestNormalizer()

	first := n.Normalize(WheelEvent{DeltaY: 30})
	clk.Advance(100 * time.Millisecond)
	second := n.Normalize(WheelEvent{DeltaY: 900})
	clk.Advance(200 * time.Millisecond)
	third := n.Normalize(WheelEvent{DeltaY: -900})

	assert.True(t, first.Accepted())
	assert.Equal(t, IgnoredCooldown, second.Reason)
	assert.Equal(t, IgnoredCooldown, third.Reason)

	clk.Advance(150 * time.Millisecond)
	fourth := n.Normalize(WheelEvent{DeltaY: -900})
	assert.True(t, fourth.Accepted())
}

func TestNormalizer_WheelNoiseFloorDoesNotStartCooldown(t *testing.T) {
	n, _, _ := newTestNormalizer()

	assert.Equal(t, IgnoredNoise, n.Normalize(WheelEvent{DeltaY: 5}).Reason)
	assert.Equal(t, IgnoredNoise, n.Normalize(WheelEvent{DeltaY: -2}).Reason)
	assert.True(t, n.Normalize(WheelEvent{DeltaY: 6}).Accepted())
}

func TestNormalizer_NestedScrollRegionOwnsInput(t *testing.T) {
	n, _, regions := newTestNormalizer()
	regions.Register("module-list", RootRegion, true)
	regions.Register("module-row", "module-list", false)
	regions.Register("bubble", RootRegion, false)

	assert.Equal(t, IgnoredRegion, n.Normalize(WheelEvent{DeltaY: 100, Target: "module-list"}).Reason)
	assert.Equal(t, IgnoredRegion, n.Normalize(WheelEvent{DeltaY: 100, Target: "module-row"}).Reason)
	assert.Equal(t, IgnoredRegion, n.Normalize(TouchStartEvent{Y: 300, Target: "module-row"}).Reason)
	assert.True(t, n.Normalize(WheelEvent{DeltaY: 100, Target: "bubble"}).Accepted())
}

func TestNormalizer_RegionIgnoredEventsDoNotTouchCooldown(t *testing.T) {
	n, _, regions := newTestNormalizer()
	regions.Register("list", RootRegion, true)

	n.Normalize(WheelEvent{DeltaY: 100, Target: "list"})

	assert.True(t, n.Normalize(WheelEvent{DeltaY: 100}).Accepted())
}

func TestNormalizer_GuardSuppressesAllInput(t *testing.T) {
	open := true
	n, _, _ := newTestNormalizer(func() bool { return open })

	assert.Equal(t, IgnoredGuard, n.Normalize(WheelEvent{DeltaY: 100}).Reason)
	assert.Equal(t, IgnoredGuard, n.Normalize(KeyEvent{Direction: Forward}).Reason)
	assert.Equal(t, IgnoredGuard, n.Normalize(TouchStartEvent{Y: 400}).Reason)
	assert.Equal(t, IgnoredGuard, n.Normalize(TouchEndEvent{Y: 100}).Reason)

	open = false
	assert.True(t, n.Normalize(WheelEvent{DeltaY: 100}).Accepted())
}

func TestNormalizer_TouchSwipe(t *testing.T) {
	n, _, _ := newTestNormalizer()

	assert.Equal(t, IgnoredTouchRecord, n.Normalize(TouchStartEvent{Y: 400}).Reason)
	res := n.Normalize(TouchEndEvent{Y: 300})
	assert.True(t, res.Accepted())
	assert.Equal(t, Forward, res.Step, "swiping up advances")

	n.Normalize(TouchStartEvent{Y: 300})
	res = n.Normalize(TouchEndEvent{Y: 420})
	assert.Equal(t, Backward, res.Step)
}

func TestNormalizer_TouchNeedsThresholdAndStart(t *testing.T) {
	n, _, _ := newTestNormalizer()

	n.Normalize(TouchStartEvent{Y: 400})
	assert.Equal(t, IgnoredShortSwipe, n.Normalize(TouchEndEvent{Y: 350}).Reason)

	assert.Equal(t, IgnoredNoTouch, n.Normalize(TouchEndEvent{Y: 0}).Reason,
		"touch start is consumed by the previous end")
}

func TestNormalizer_TouchHasNoCooldown(t *testing.T) {
	n, _, _ := newTestNormalizer()

	for i := 0; i < 3; i++ {
		n.Normalize(TouchStartEvent{Y: 500})
		assert.True(t, n.Normalize(TouchEndEvent{Y: 100}).Accepted())
	}
}

func TestNormalizer_KeyStep(t *testing.T) {
	n, _, _ := newTestNormalizer()

	assert.Equal(t, Backward, n.Normalize(KeyEvent{Direction: Backward}).Step)
	assert.Equal(t, Forward, n.Normalize(KeyEvent{Direction: Forward}).Step)
	assert.False(t, n.Normalize(KeyEvent{}).Accepted())
}
