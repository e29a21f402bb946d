package client

// cacheSnapshot returns the compact copy kept in the cache store: the
// sprite set is already trimmed by normalization, so the only
// difference from the full record is the emptied moves list, which
// dominates payload size.
func cacheSnapshot(p *Pokemon) Pokemon {
	snap := *p
	snap.Moves = []Move{}
	return snap
}
