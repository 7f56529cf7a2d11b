package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_CopiesInput(t *testing.T) {
	mods := []Module{{ID: "m1", Name: "A"}}
	in := []Domain{{ID: "d1", Title: "One", Modules: mods}}

	c, err := NewCatalog(in)
	require.NoError(t, err)

	mods[0].Name = "changed"
	in[0].Title = "changed"
	assert.Equal(t, "A", c.At(0).Modules[0].Name)
	assert.Equal(t, "One", c.At(0).Title)
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]Domain{{ID: "d1"}, {ID: "d1"}})
	assert.ErrorContains(t, err, `duplicate domain id "d1"`)

	_, err = NewCatalog([]Domain{
		{ID: "d1", Modules: []Module{{ID: "m1"}}},
		{ID: "d2", Modules: []Module{{ID: "m1"}}},
	})
	assert.ErrorContains(t, err, `duplicate module id "m1"`)
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := NewCatalog([]Domain{
		{ID: "d1", Modules: []Module{{ID: "m1"}, {ID: "m2"}}},
		{ID: "d2", Modules: []Module{{ID: "m3"}}},
	})
	require.NoError(t, err)

	i, ok := c.IndexOf("d2")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = c.IndexOf("nope")
	assert.False(t, ok)

	m, ok := c.Module("m3")
	assert.True(t, ok)
	assert.Equal(t, "m3", m.ID)
	assert.Equal(t, 3, c.ModuleCount())
	assert.Len(t, c.Domains(), 2)
}

func TestModuleIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ModuleIDs([]Module{{ID: "a"}, {ID: "b"}}))
	assert.Empty(t, ModuleIDs(nil))
}
