package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTier_Title(t *testing.T) {
	assert.Equal(t, "Discovery", Tier{GradeLabel: "K-2", DisplayLabel: "Discovery"}.Title())
	assert.Equal(t, "K-2", Tier{GradeLabel: "K-2"}.Title())
	assert.Empty(t, Tier{}.Title())
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Empty(t, CoalesceStr("", ""))
	assert.Empty(t, CoalesceStr())
}
