package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_AdvanceFiresInDeadlineOrder(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	var fired []string
	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "b") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "c") })

	c.Advance(500 * time.Millisecond)

	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, c.Pending())
	assert.Equal(t, time.Unix(0, 0).Add(500*time.Millisecond), c.Now())
}

func TestFake_StopPreventsCallback(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	c.Advance(2 * time.Second)

	assert.False(t, fired)
}

func TestFake_CallbackSeesDeadlineAsNow(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewFake(start)
	var seen time.Time
	c.AfterFunc(250*time.Millisecond, func() { seen = c.Now() })

	c.Advance(time.Second)

	assert.Equal(t, start.Add(250*time.Millisecond), seen)
}

func TestFake_TimerScheduledByCallbackFiresWithinWindow(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	count := 0
	c.AfterFunc(100*time.Millisecond, func() {
		count++
		c.AfterFunc(100*time.Millisecond, func() { count++ })
	})

	c.Advance(250 * time.Millisecond)

	assert.Equal(t, 2, count)
}
