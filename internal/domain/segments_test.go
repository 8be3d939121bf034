package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentInfo(t *testing.T) {
	for id := 1; id <= NumSegments; id++ {
		seg, err := SegmentInfo(id)
		require.NoError(t, err)
		assert.Equal(t, id, seg.ID)
		assert.NotEmpty(t, seg.Name)
		assert.NotEmpty(t, seg.Wall)
		assert.True(t, seg.Artery.IsValid())
	}
}

func TestSegmentInfo_Unknown(t *testing.T) {
	_, err := SegmentInfo(0)
	assert.ErrorIs(t, err, ErrUnknownSegment)

	_, err = SegmentInfo(18)
	assert.ErrorIs(t, err, ErrUnknownSegment)
}

func TestTerritorySegments(t *testing.T) {
	da, err := TerritorySegments(ArteryDA)
	require.NoError(t, err)
	cd, err := TerritorySegments(ArteryCD)
	require.NoError(t, err)
	cx, err := TerritorySegments(ArteryCx)
	require.NoError(t, err)

	// The three territories partition the 17 segments.
	assert.Len(t, da, 7)
	assert.Len(t, cd, 5)
	assert.Len(t, cx, 5)

	seen := make(map[int]bool)
	for _, ids := range [][]int{da, cd, cx} {
		for _, id := range ids {
			assert.False(t, seen[id], "segment %d assigned twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, NumSegments)
}

func TestTerritorySegments_Unknown(t *testing.T) {
	_, err := TerritorySegments(Artery("LM"))
	assert.ErrorIs(t, err, ErrUnknownArtery)
}

func TestApexReferenceData(t *testing.T) {
	apex, err := SegmentInfo(17)
	require.NoError(t, err)
	assert.Equal(t, "Ápex", apex.Name)
	assert.Equal(t, "apical", apex.Wall)
	assert.Equal(t, LevelApical, apex.Level)
	assert.Equal(t, ArteryDA, apex.Artery)
}

func TestAnteriorWallSpansAllLevels(t *testing.T) {
	levels := make(map[SegmentLevel]bool)
	for _, id := range []int{1, 7, 13} {
		seg, err := SegmentInfo(id)
		require.NoError(t, err)
		assert.Equal(t, "anterior", seg.Wall)
		levels[seg.Level] = true
	}
	assert.Len(t, levels, 3)
}

func TestTerritoriesOrder(t *testing.T) {
	assert.Equal(t, []Artery{ArteryDA, ArteryCD, ArteryCx}, Territories())
}
