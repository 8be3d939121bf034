package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternLibrary(t *testing.T) {
	ids := PatternIDs()
	assert.Len(t, ids, 25)

	for _, id := range ids {
		p, err := PatternInfo(id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		assert.NotEmpty(t, p.Segments)
		assert.True(t, p.Default.IsValid())
		assert.True(t, p.Category.IsValid())
		for _, sid := range p.Segments {
			_, err := SegmentInfo(sid)
			assert.NoError(t, err, "pattern %s references segment %d", id, sid)
		}
	}
}

func TestPatternInfo_Unknown(t *testing.T) {
	_, err := PatternInfo("no_such_pattern")
	assert.ErrorIs(t, err, ErrUnknownPattern)

	// The "none" sentinel is not a library entry.
	_, err = PatternInfo(PatternNone)
	assert.ErrorIs(t, err, ErrUnknownPattern)
	assert.False(t, IsPattern(PatternNone))
}

func TestDilatedCMPattern(t *testing.T) {
	p, err := PatternInfo(PatternDilatedCM)
	require.NoError(t, err)

	assert.True(t, p.Diffuse)
	assert.Equal(t, CategoryCardiomyopathy, p.Category)
	assert.Equal(t, SeverityHypokinetic, p.Default)
	assert.Len(t, p.Segments, 16)
	assert.NotContains(t, p.Segments, 17, "the apex is spared")
}

func TestDyssynchronyPatternCount(t *testing.T) {
	count := 0
	for _, id := range PatternIDs() {
		p, err := PatternInfo(id)
		require.NoError(t, err)
		if p.Category == CategoryDyssynchrony {
			count++
		}
	}
	assert.Equal(t, 5, count)
}
