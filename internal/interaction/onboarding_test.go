package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuide_WalksEveryStepThenCloses(t *testing.T) {
	g := NewGuide(true)
	for i, want := range GuideSteps {
		step, target := g.Step()
		assert.Equal(t, i, step)
		assert.Equal(t, want, target)
		assert.True(t, g.Open())
		g.Next()
	}
	assert.False(t, g.Open())

	g.Next()
	assert.False(t, g.Open())
}

func TestGuide_Skip(t *testing.T) {
	g := NewGuide(true)
	g.Next()
	g.Skip()
	assert.False(t, g.Open())
}

func TestGuide_HiddenWhenNotShown(t *testing.T) {
	g := NewGuide(false)
	assert.False(t, g.Open())

	g.Next()
	step, target := g.Step()
	assert.Equal(t, 0, step)
	assert.Equal(t, TargetScroll, target)
}
