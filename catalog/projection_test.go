package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDefaultViewShowsOnlyScrolledWindow(t *testing.T) {
	records := testRecords()
	out := Project(records, 2, Filters{}, SortByID, true)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 4, out[1].ID)
}

func TestProjectFilterSeesBeyondScrollWindow(t *testing.T) {
	// snorlax sits past the scroll frontier but a filter must find it.
	records := testRecords()
	out := Project(records, 2, Filters{Name: "snorlax"}, SortByID, true)
	require.Len(t, out, 1)
	assert.Equal(t, 143, out[0].ID)
}

func TestProjectNonDefaultSortSeesEverythingLoaded(t *testing.T) {
	records := testRecords()
	out := Project(records, 2, Filters{}, SortByHP, false)
	require.Len(t, out, 5)
	assert.Equal(t, "snorlax", out[0].Name)
}

func TestProjectDescendingIDSeesEverythingLoaded(t *testing.T) {
	records := testRecords()
	out := Project(records, 2, Filters{}, SortByID, false)
	require.Len(t, out, 5)
	assert.Equal(t, 143, out[0].ID)
}

func TestProjectScrollOffsetPastEnd(t *testing.T) {
	records := testRecords()
	out := Project(records, 50, Filters{}, SortByID, true)
	assert.Len(t, out, 5)
}

func TestGroupByPrimaryTypeDisabled(t *testing.T) {
	groups := GroupByPrimaryType(testRecords(), false, Filters{})
	require.Len(t, groups, 1)
	assert.Equal(t, "Todos", groups[0].Label)
	assert.Len(t, groups[0].Pokemon, 5)
}

func TestGroupByPrimaryTypeSections(t *testing.T) {
	groups := GroupByPrimaryType(testRecords(), true, Filters{})
	require.Len(t, groups, 4)

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{"Elétrico", "Fogo", "Grama", "Normal"}, labels)

	// Members ordered by id inside each section.
	for _, g := range groups {
		if g.Label == "Fogo" {
			require.Len(t, g.Pokemon, 2)
			assert.Equal(t, 4, g.Pokemon[0].ID)
			assert.Equal(t, 6, g.Pokemon[1].ID)
		}
	}
}

func TestGroupByPrimaryTypeWithTypeFilterCollapses(t *testing.T) {
	f := Filters{Types: []string{"fire"}}
	list := FilterRecords(testRecords(), f)
	groups := GroupByPrimaryType(list, true, f)
	require.Len(t, groups, 1)
	assert.Equal(t, "Fogo", groups[0].Label)

	f.Types = []string{"fire", "electric"}
	groups = GroupByPrimaryType(list, true, f)
	require.Len(t, groups, 1)
	assert.Equal(t, "Múltiplos Tipos", groups[0].Label)
}

func TestGroupByPrimaryTypeEmptyList(t *testing.T) {
	assert.Nil(t, GroupByPrimaryType(nil, true, Filters{}))
}
