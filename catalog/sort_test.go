package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortRecordsByID(t *testing.T) {
	out := SortRecords(testRecords(), SortByID, false)
	require.Len(t, out, 5)
	assert.Equal(t, 143, out[0].ID)
	assert.Equal(t, 1, out[4].ID)
}

func TestSortRecordsByName(t *testing.T) {
	out := SortRecords(testRecords(), SortByName, true)
	assert.Equal(t, "bulbasaur", out[0].Name)
	assert.Equal(t, "charizard", out[1].Name)
	assert.Equal(t, "snorlax", out[4].Name)
}

func TestSortRecordsByHP(t *testing.T) {
	asc := SortRecords(testRecords(), SortByHP, true)
	desc := SortRecords(testRecords(), SortByHP, false)

	assert.Equal(t, "pikachu", asc[0].Name)
	assert.Equal(t, "snorlax", asc[4].Name)

	// Descending is the exact reversal of ascending.
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestSortRecordsByPrimaryType(t *testing.T) {
	out := SortRecords(testRecords(), SortByType, true)
	assert.Equal(t, "electric", out[0].PrimaryType())
	assert.Equal(t, "normal", out[4].PrimaryType())
}

func TestSortRecordsByWeight(t *testing.T) {
	out := SortRecords(testRecords(), SortByWeight, true)
	assert.Equal(t, "pikachu", out[0].Name)
	assert.Equal(t, "snorlax", out[4].Name)
}

func TestSortRecordsDoesNotMutateInput(t *testing.T) {
	records := testRecords()
	SortRecords(records, SortByName, false)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, 143, records[4].ID)
}

func TestIsDefaultSort(t *testing.T) {
	assert.True(t, IsDefaultSort(SortByID, true))
	assert.False(t, IsDefaultSort(SortByID, false))
	assert.False(t, IsDefaultSort(SortByName, true))
}
