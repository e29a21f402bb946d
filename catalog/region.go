package catalog

// Region is a contiguous id range mapping to offset 0 of pagination.
type Region struct {
	Key   string
	Name  string
	Start int
	End   int
	Count int
}

// Regions in dex order.
var Regions = []Region{
	{Key: "kanto", Name: "Kanto", Start: 1, End: 151, Count: 151},
	{Key: "johto", Name: "Johto", Start: 152, End: 251, Count: 100},
	{Key: "hoenn", Name: "Hoenn", Start: 252, End: 386, Count: 135},
	{Key: "sinnoh", Name: "Sinnoh", Start: 387, End: 493, Count: 107},
}

// DefaultRegion is the initial selection.
var DefaultRegion = Regions[0]

// RegionByKey looks a region up by its key.
func RegionByKey(key string) (Region, bool) {
	for _, r := range Regions {
		if r.Key == key {
			return r, true
		}
	}
	return Region{}, false
}
