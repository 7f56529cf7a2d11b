package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNavigator_RejectsEmpty(t *testing.T) {
	_, err := NewNavigator(0)
	assert.Error(t, err)
}

func TestNavigator_ClampsAtBothEnds(t *testing.T) {
	n, err := NewNavigator(3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		n.Apply(Forward)
		assert.GreaterOrEqual(t, n.Index(), 0.0)
		assert.LessOrEqual(t, n.Index(), 2.0)
	}
	assert.Equal(t, 2, n.Apply(Forward))

	for i := 0; i < 10; i++ {
		n.Apply(Backward)
	}
	assert.Equal(t, 0, n.Apply(Backward))
	assert.Equal(t, 0.0, n.Index())
}

func TestNavigator_RoundsFractionalIndexBeforeStepping(t *testing.T) {
	n, err := NewNavigator(5)
	require.NoError(t, err)

	n.index = 1.6
	assert.Equal(t, 3, n.Apply(Forward))

	n.index = 1.4
	assert.Equal(t, 0, n.Apply(Backward))
}

func TestNavigator_SingleSlot(t *testing.T) {
	n, err := NewNavigator(1)
	require.NoError(t, err)

	assert.Equal(t, 0, n.Apply(Forward))
	assert.Equal(t, 0, n.Apply(Backward))
}
