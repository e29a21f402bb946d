package catalog

import (
	"sort"

	"github.com/lribeiro/dexview/client"
)

// Project derives the display list from the raw record list. With no
// active filter and the default sort, only what scroll has explicitly
// surfaced (records[:scrollOffset]) is shown; any active filter or
// non-default sort needs visibility into everything loaded so far, so
// the whole list (up to the preload frontier) is used instead.
func Project(records []client.Pokemon, scrollOffset int, f Filters, field SortField, ascending bool) []client.Pokemon {
	list := records
	if !f.Active() && IsDefaultSort(field, ascending) {
		if scrollOffset < len(list) {
			list = list[:scrollOffset]
		}
	}
	return FilterRecords(SortRecords(list, field, ascending), f)
}

// Group is one section of a type-grouped display list.
type Group struct {
	Type    string
	Label   string
	Pokemon []client.Pokemon
}

// GroupByPrimaryType splits an already-projected list into sections by
// translated primary type. Grouping collapses to a single section when
// disabled or when a type filter is active (the filter already narrows
// the list to the chosen types).
func GroupByPrimaryType(list []client.Pokemon, enabled bool, f Filters) []Group {
	if len(list) == 0 {
		return nil
	}

	if !enabled {
		return []Group{{Type: "all", Label: "Todos", Pokemon: list}}
	}

	if f.HasTypeFilter() {
		label := TranslateType(f.Types[0])
		if len(f.Types) > 1 {
			label = "Múltiplos Tipos"
		}
		return []Group{{Type: f.Types[0], Label: label, Pokemon: list}}
	}

	byLabel := make(map[string]*Group)
	for i := range list {
		primary := list[i].PrimaryType()
		label := TranslateType(primary)
		g, ok := byLabel[label]
		if !ok {
			g = &Group{Type: primary, Label: label}
			byLabel[label] = g
		}
		g.Pokemon = append(g.Pokemon, list[i])
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	groups := make([]Group, 0, len(labels))
	for _, label := range labels {
		g := *byLabel[label]
		sort.SliceStable(g.Pokemon, func(i, j int) bool { return g.Pokemon[i].ID < g.Pokemon[j].ID })
		groups = append(groups, g)
	}
	return groups
}
