package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lribeiro/dexview/client"
)

// testRecord builds a minimal catalog record for filter and sort tests.
// weight is in hectograms and height in decimeters, as the API stores
// them.
func testRecord(id int, name string, hp, weight, height int, types ...string) client.Pokemon {
	p := client.Pokemon{
		ID:     id,
		Name:   name,
		Weight: weight,
		Height: height,
		Stats:  []client.StatValue{{BaseStat: hp, Stat: client.NamedRef{Name: "hp"}}},
	}
	for i, tn := range types {
		p.Types = append(p.Types, client.TypeSlot{Slot: i + 1, Type: client.NamedRef{Name: tn}})
	}
	return p
}

func testRecords() []client.Pokemon {
	return []client.Pokemon{
		testRecord(1, "bulbasaur", 45, 69, 7, "grass", "poison"),
		testRecord(4, "charmander", 39, 85, 6, "fire"),
		testRecord(6, "charizard", 78, 905, 17, "fire", "flying"),
		testRecord(25, "pikachu", 35, 60, 4, "electric"),
		testRecord(143, "snorlax", 160, 4600, 21, "normal"),
	}
}

func ptr(v float64) *float64 { return &v }

func TestFilterRecordsByName(t *testing.T) {
	out := FilterRecords(testRecords(), Filters{Name: "char"})
	require.Len(t, out, 2)
	assert.Equal(t, "charmander", out[0].Name)
	assert.Equal(t, "charizard", out[1].Name)
}

func TestFilterRecordsNameIsAccentAndCaseInsensitive(t *testing.T) {
	records := []client.Pokemon{testRecord(669, "flabébé", 44, 1, 1, "fairy")}
	out := FilterRecords(records, Filters{Name: "FLABEBE"})
	require.Len(t, out, 1)
}

func TestFilterRecordsByTypeOrSemantics(t *testing.T) {
	out := FilterRecords(testRecords(), Filters{Types: []string{"fire", "electric"}})
	require.Len(t, out, 3)
	assert.Equal(t, []int{4, 6, 25}, []int{out[0].ID, out[1].ID, out[2].ID})
}

func TestFilterRecordsMatchesSecondaryType(t *testing.T) {
	out := FilterRecords(testRecords(), Filters{Types: []string{"poison"}})
	require.Len(t, out, 1)
	assert.Equal(t, "bulbasaur", out[0].Name)
}

func TestFilterRecordsWeightConvertsToKilograms(t *testing.T) {
	// charizard is stored as 905 hg and must pass a [85, 95] kg range.
	f := Filters{Weight: Range{Min: ptr(85), Max: ptr(95)}}
	out := FilterRecords(testRecords(), f)
	require.Len(t, out, 1)
	assert.Equal(t, "charizard", out[0].Name)

	heavy := []client.Pokemon{testRecord(999, "heavy", 50, 1000, 10, "rock")}
	assert.Empty(t, FilterRecords(heavy, f))
}

func TestFilterRecordsHeightConvertsToMeters(t *testing.T) {
	f := Filters{Height: Range{Max: ptr(0.5)}}
	out := FilterRecords(testRecords(), f)
	require.Len(t, out, 1)
	assert.Equal(t, "pikachu", out[0].Name)
}

func TestFilterRecordsCombineWithAnd(t *testing.T) {
	f := Filters{
		Name:  "char",
		Types: []string{"fire"},
		HP:    Range{Min: ptr(50)},
	}
	out := FilterRecords(testRecords(), f)
	require.Len(t, out, 1)
	assert.Equal(t, "charizard", out[0].Name)
}

func TestFilterRecordsNilBoundsAreUnbounded(t *testing.T) {
	out := FilterRecords(testRecords(), Filters{HP: Range{Min: ptr(0)}})
	assert.Len(t, out, 5)
}

func TestFilterRecordsPreservesOrder(t *testing.T) {
	out := FilterRecords(testRecords(), Filters{})
	require.Len(t, out, 5)
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].ID, out[i].ID)
	}
}

func TestFiltersActive(t *testing.T) {
	assert.False(t, Filters{}.Active())
	assert.False(t, Filters{Name: "   "}.Active())
	assert.True(t, Filters{Name: "pika"}.Active())
	assert.True(t, Filters{Types: []string{"fire"}}.Active())
	assert.True(t, Filters{HP: Range{Min: ptr(10)}}.Active())
}
