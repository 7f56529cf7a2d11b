package interaction

import (
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackRegistry_TokenExpiresAfterLifetime(t *testing.T) {
	start := time.Unix(1000, 0)
	clk := clock.NewFake(start)
	changes := 0
	r := NewFeedbackRegistry(clk, 900*time.Millisecond, 8, func() { changes++ })

	tok, ok := r.Spawn(120, 340)
	require.True(t, ok)
	assert.Equal(t, start, tok.CreatedAt)
	assert.Equal(t, 120.0, tok.OriginX)
	assert.Equal(t, 1, r.Len())

	clk.Advance(899 * time.Millisecond)
	assert.Equal(t, 1, r.Len())

	clk.Advance(2 * time.Millisecond)
	assert.Zero(t, r.Len())
	assert.Equal(t, 1, changes)
}

func TestFeedbackRegistry_TokensExpireIndependently(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	r := NewFeedbackRegistry(clk, time.Second, 8, nil)

	a, _ := r.Spawn(0, 0)
	clk.Advance(400 * time.Millisecond)
	b, _ := r.Spawn(1, 1)
	assert.NotEqual(t, a.ID, b.ID)

	clk.Advance(601 * time.Millisecond)
	live := r.Tokens()
	require.Len(t, live, 1)
	assert.Equal(t, b.ID, live[0].ID)

	clk.Advance(400 * time.Millisecond)
	assert.Zero(t, r.Len())
}

func TestFeedbackRegistry_RemoveIsIdempotent(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	changes := 0
	r := NewFeedbackRegistry(clk, time.Second, 8, func() { changes++ })

	tok, _ := r.Spawn(0, 0)
	assert.True(t, r.Remove(tok.ID))
	assert.False(t, r.Remove(tok.ID))

	clk.Advance(2 * time.Second)
	assert.Zero(t, changes, "expiry of a removed token is not reported")
	assert.Zero(t, clk.Pending())
}

func TestFeedbackRegistry_CapBoundsLiveTokens(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	r := NewFeedbackRegistry(clk, time.Second, 2, nil)

	_, ok1 := r.Spawn(0, 0)
	_, ok2 := r.Spawn(0, 0)
	_, ok3 := r.Spawn(0, 0)
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.False(t, ok3)

	clk.Advance(time.Second)
	_, ok4 := r.Spawn(0, 0)
	assert.True(t, ok4, "expired tokens release their slot")
}

func TestFeedbackRegistry_UniqueIDsUnderRapidSpawns(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	r := NewFeedbackRegistry(clk, time.Second, 64, nil)

	seen := make(map[uint64]bool)
	for i := 0; i < 50; i++ {
		tok, ok := r.Spawn(0, 0)
		require.True(t, ok)
		assert.False(t, seen[tok.ID])
		seen[tok.ID] = true
	}
}

func TestFeedbackRegistry_CloseDropsEverything(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	r := NewFeedbackRegistry(clk, time.Second, 4, nil)
	r.Spawn(0, 0)
	r.Spawn(0, 0)

	r.Close()

	assert.Zero(t, r.Len())
	assert.Zero(t, clk.Pending())
}
