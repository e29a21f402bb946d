package cache

import (
	"encoding/json"
	"strings"
	"time"
)

// EntryInfo describes one cached entry for the management surface.
type EntryInfo struct {
	Key      string    `json:"key"`
	Size     int64     `json:"size"`
	StoredAt time.Time `json:"stored_at"`
	Expired  bool      `json:"expired"`
}

// Stats summarizes the store's contents.
type Stats struct {
	TotalEntries int       `json:"total_entries"`
	TotalSize    int64     `json:"total_size"`
	OldestEntry  time.Time `json:"oldest_entry"`
	NewestEntry  time.Time `json:"newest_entry"`
	Disabled     bool      `json:"disabled"`
}

// Entries lists cached entries in index (insertion) order. Entries on
// storage but missing from the index are appended at the end.
func (s *Store) Entries() []EntryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var infos []EntryInfo
	for _, ck := range s.getIndex() {
		if info, ok := s.entryInfo(ck); ok {
			infos = append(infos, info)
			seen[ck] = true
		}
	}

	keys, err := s.storage.Keys()
	if err != nil {
		return infos
	}
	for _, ck := range keys {
		if !strings.HasPrefix(ck, keyPrefix) || ck == s.indexKey() || seen[ck] {
			continue
		}
		if info, ok := s.entryInfo(ck); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

func (s *Store) entryInfo(ck string) (EntryInfo, bool) {
	raw, ok, err := s.storage.Get(ck)
	if err != nil || !ok {
		return EntryInfo{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return EntryInfo{}, false
	}
	storedAt := time.UnixMilli(e.Timestamp)
	return EntryInfo{
		Key:      strings.TrimPrefix(ck, keyPrefix+schemaVersion+"_"),
		Size:     int64(len(raw)),
		StoredAt: storedAt,
		Expired:  s.now().Sub(storedAt) > s.maxAge,
	}, true
}

// GetStats aggregates entry counts, sizes and age bounds.
func (s *Store) GetStats() Stats {
	entries := s.Entries()

	s.mu.Lock()
	stats := Stats{Disabled: s.disabled}
	s.mu.Unlock()

	for _, e := range entries {
		stats.TotalEntries++
		stats.TotalSize += e.Size
		if stats.OldestEntry.IsZero() || e.StoredAt.Before(stats.OldestEntry) {
			stats.OldestEntry = e.StoredAt
		}
		if e.StoredAt.After(stats.NewestEntry) {
			stats.NewestEntry = e.StoredAt
		}
	}
	return stats
}

// Prune removes entries older than maxAge and returns how many were
// removed. With dryRun it only counts.
func (s *Store) Prune(maxAge time.Duration, dryRun bool) int {
	entries := s.Entries()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, e := range entries {
		if s.now().Sub(e.StoredAt) <= maxAge {
			continue
		}
		removed++
		if !dryRun {
			s.deleteEntry(keyPrefix + schemaVersion + "_" + e.Key)
		}
	}
	return removed
}
