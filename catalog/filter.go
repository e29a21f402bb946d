package catalog

import (
	"strings"

	"github.com/lribeiro/dexview/client"
)

// Range is a numeric filter bound. A nil side is unbounded; both
// bounds are inclusive.
type Range struct {
	Min *float64
	Max *float64
}

// Active reports whether either bound is set.
func (r Range) Active() bool {
	return r.Min != nil || r.Max != nil
}

func (r Range) contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Filters is the pure value object describing the active filter set.
// Weight is expressed in kilograms and Height in meters; records store
// hectograms and decimeters, so values are divided by 10 before
// comparison.
type Filters struct {
	Name   string
	Types  []string
	HP     Range
	Weight Range
	Height Range
}

// Active reports whether any filter would exclude records.
func (f Filters) Active() bool {
	return strings.TrimSpace(f.Name) != "" || len(f.Types) > 0 ||
		f.HP.Active() || f.Weight.Active() || f.Height.Active()
}

// HasTypeFilter reports whether a type filter is set.
func (f Filters) HasTypeFilter() bool {
	return len(f.Types) > 0
}

// matchesType implements OR semantics: an empty filter matches all,
// otherwise the record needs at least one of the wanted types.
func matchesType(p *client.Pokemon, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, t := range want {
		if p.HasType(t) {
			return true
		}
	}
	return false
}

// FilterRecords applies the filter set to records, preserving order.
// All active filters combine with logical AND.
func FilterRecords(records []client.Pokemon, f Filters) []client.Pokemon {
	name := strings.TrimSpace(f.Name)
	out := make([]client.Pokemon, 0, len(records))
	for i := range records {
		p := &records[i]
		if name != "" && !ContainsNormalized(p.Name, name) {
			continue
		}
		if !matchesType(p, f.Types) {
			continue
		}
		if f.HP.Active() && !f.HP.contains(float64(p.HP())) {
			continue
		}
		if f.Weight.Active() && !f.Weight.contains(float64(p.Weight)/10) {
			continue
		}
		if f.Height.Active() && !f.Height.contains(float64(p.Height)/10) {
			continue
		}
		out = append(out, *p)
	}
	return out
}
