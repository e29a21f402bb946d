package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lribeiro/dexview/client"
)

// SortField selects the comparator used by SortRecords.
type SortField string

const (
	SortByID     SortField = "id"
	SortByName   SortField = "name"
	SortByType   SortField = "type"
	SortByWeight SortField = "weight"
	SortByHeight SortField = "height"
	SortByHP     SortField = "hp"
)

// SortFields lists the selectable fields in display order.
var SortFields = []SortField{SortByID, SortByName, SortByType, SortByWeight, SortByHeight, SortByHP}

// IsDefaultSort reports whether the given order is the catalog
// default, id ascending.
func IsDefaultSort(field SortField, ascending bool) bool {
	return field == SortByID && ascending
}

// SortRecords returns a new slice sorted by field. The input is never
// mutated; ties keep their given order. String fields use pt-BR
// collation, matching the upstream record locale.
func SortRecords(records []client.Pokemon, field SortField, ascending bool) []client.Pokemon {
	out := make([]client.Pokemon, len(records))
	copy(out, records)

	var coll *collate.Collator
	if field == SortByName || field == SortByType {
		coll = collate.New(language.BrazilianPortuguese)
	}

	less := func(a, b *client.Pokemon) bool {
		switch field {
		case SortByName:
			return coll.CompareString(a.Name, b.Name) < 0
		case SortByType:
			return coll.CompareString(a.PrimaryType(), b.PrimaryType()) < 0
		case SortByWeight:
			return a.Weight < b.Weight
		case SortByHeight:
			return a.Height < b.Height
		case SortByHP:
			return a.HP() < b.HP()
		default:
			return a.ID < b.ID
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return less(&out[i], &out[j])
		}
		return less(&out[j], &out[i])
	})
	return out
}
