package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_PutGet(t *testing.T) {
	a, err := NewArchive(4, testLogger())
	require.NoError(t, err)

	report := &ComposedReport{ID: "r1", StudyID: "eco-001"}
	a.Put(report)

	got, ok := a.Get("eco-001")
	require.True(t, ok)
	assert.Same(t, report, got)

	_, ok = a.Get("eco-999")
	assert.False(t, ok)
}

func TestArchive_SkipsReportsWithoutStudyID(t *testing.T) {
	a, err := NewArchive(4, testLogger())
	require.NoError(t, err)

	a.Put(nil)
	a.Put(&ComposedReport{ID: "anonymous"})
	assert.Equal(t, 0, a.Len())
}

func TestArchive_SamestudyReplacesEntry(t *testing.T) {
	a, err := NewArchive(4, testLogger())
	require.NoError(t, err)

	a.Put(&ComposedReport{ID: "old", StudyID: "eco-001"})
	a.Put(&ComposedReport{ID: "new", StudyID: "eco-001"})

	got, ok := a.Get("eco-001")
	require.True(t, ok)
	assert.Equal(t, "new", got.ID)
	assert.Equal(t, 1, a.Len())
}

func TestArchive_EvictsLeastRecentlyUsed(t *testing.T) {
	a, err := NewArchive(2, testLogger())
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("eco-%03d", i)
		a.Put(&ComposedReport{ID: id, StudyID: id})
	}

	assert.Equal(t, 2, a.Len())
	_, ok := a.Get("eco-001")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = a.Get("eco-003")
	assert.True(t, ok)
}
