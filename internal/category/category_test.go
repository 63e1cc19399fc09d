package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_CanonicalOrder(t *testing.T) {
	for i, phase := range PhaseOrder {
		assert.Equal(t, i, Index(phase), "phase=%q", phase)
	}
}

func TestIndex_MisspellingMatchesPreliminary(t *testing.T) {
	assert.Equal(t, 0, Index("Prelliminary Work"))
	assert.Equal(t, 0, Index("preliminary work"))
	assert.Equal(t, 0, Index("Preliminary work"))
	assert.Equal(t, 0, Index("  PRELIMINARY WORK  "))
}

func TestIndex_UnmatchedSortsLast(t *testing.T) {
	assert.Equal(t, UnrankedIndex, Index(""))
	assert.Equal(t, UnrankedIndex, Index("Uncategorized"))
	assert.Equal(t, UnrankedIndex, Index("uncategorized"))
	assert.Equal(t, UnrankedIndex, Index("Landscaping"))
	for _, phase := range PhaseOrder {
		assert.Less(t, Index(phase), UnrankedIndex)
	}
}

func TestSame(t *testing.T) {
	assert.True(t, Same("Foundation", " foundation "))
	assert.True(t, Same("Prelliminary work", "Preliminary Work"))
	assert.False(t, Same("Foundation", "Structural"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Preliminary work", DisplayName("prelliminary work"))
	assert.Equal(t, "Foundation", DisplayName(" FOUNDATION "))
	assert.Equal(t, "Landscaping", DisplayName(" Landscaping "))
	assert.Equal(t, "Preliminary grading", DisplayName("Prelliminary grading"))
}
