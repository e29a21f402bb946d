package cache

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	keyPrefix     = "dexcache_"
	schemaVersion = "v1"

	// DefaultMaxAge is the entry TTL.
	DefaultMaxAge = 24 * time.Hour
	// DefaultMaxEntries bounds the recency index.
	DefaultMaxEntries = 40

	// staleAge is the cutoff used when recovering from a full storage.
	staleAge = 7 * 24 * time.Hour
	// quotaEvictCount is how many oldest entries a recovery evicts.
	quotaEvictCount = 10
)

// entry is the persisted wrapper around a payload.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // ms epoch
	Version   string          `json:"version"`
}

// Store is a bounded key/value cache: entries carry a TTL and a schema
// version, and an insertion-order index caps the total entry count.
// When the underlying storage rejects a write for lack of space the
// store recovers once (purge stale, evict oldest, retry); if that also
// fails it disables itself for the rest of the process: Sets become
// no-ops while Gets keep serving existing valid entries.
type Store struct {
	mu         sync.Mutex
	storage    Storage
	logger     *log.Logger
	maxAge     time.Duration
	maxEntries int
	disabled   bool
	warnedFull bool
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMaxAge overrides the entry TTL.
func WithMaxAge(d time.Duration) Option {
	return func(s *Store) { s.maxAge = d }
}

// WithMaxEntries overrides the index bound.
func WithMaxEntries(n int) Option {
	return func(s *Store) { s.maxEntries = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store over the given storage backend.
func New(storage Storage, logger *log.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		storage:    storage,
		logger:     logger,
		maxAge:     DefaultMaxAge,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) cacheKey(key string) string {
	return keyPrefix + schemaVersion + "_" + key
}

func (s *Store) indexKey() string {
	return keyPrefix + schemaVersion + "_index"
}

// Get decodes the payload stored under key into out and reports
// whether a valid entry was found. Absent, version-mismatched and
// expired entries all count as misses and are deleted on the way out.
// Storage read errors are treated as misses.
func (s *Store) Get(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ck := s.cacheKey(key)
	raw, ok, err := s.storage.Get(ck)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		s.deleteEntry(ck)
		return false
	}
	if e.Version != schemaVersion {
		s.deleteEntry(ck)
		return false
	}
	if s.now().UnixMilli()-e.Timestamp > s.maxAge.Milliseconds() {
		s.deleteEntry(ck)
		return false
	}

	if out != nil {
		if err := json.Unmarshal(e.Data, out); err != nil {
			s.logger.Warn("cache entry decode failed", "key", key, "error", err)
			return false
		}
	}
	return true
}

// Has reports whether a valid entry exists under key.
func (s *Store) Has(key string) bool {
	var discard json.RawMessage
	return s.Get(key, &discard)
}

// Set writes data through to storage, appends the key to the recency
// index, and enforces the entry bound. A quota failure triggers the
// one-shot recovery described on Store.
func (s *Store) Set(key string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	e := entry{Data: raw, Timestamp: s.now().UnixMilli(), Version: schemaVersion}
	buf, err := json.Marshal(&e)
	if err != nil {
		s.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}

	ck := s.cacheKey(key)
	if err := s.writeEntry(ck, buf); err != nil {
		s.recoverWrite(err, ck, buf)
	}
}

func (s *Store) writeEntry(ck string, buf []byte) error {
	if err := s.storage.Set(ck, buf); err != nil {
		return err
	}
	s.addToIndex(ck)
	s.enforceMaxEntries()
	return nil
}

// recoverWrite handles a failed write. Non-quota errors are logged and
// dropped; quota errors run the recovery sequence once.
func (s *Store) recoverWrite(err error, ck string, buf []byte) {
	if !errors.Is(err, ErrQuotaExceeded) {
		s.logger.Warn("cache write failed", "key", ck, "error", err)
		return
	}

	if !s.warnedFull {
		s.logger.Warn("cache storage full, trying to free space")
		s.warnedFull = true
	}

	s.purgeOlderThan(staleAge)
	if err := s.writeEntry(ck, buf); err == nil {
		return
	}

	s.evictOldest(quotaEvictCount)
	if err := s.writeEntry(ck, buf); err == nil {
		return
	}

	s.logger.Warn("cache write still failing after cleanup, disabling cache for this session")
	s.disabled = true
}

// Remove deletes the entry under key and its index slot.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteEntry(s.cacheKey(key))
}

// Clear wipes every entry under this store's namespace and resets the
// index.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.storage.Keys()
	if err != nil {
		s.logger.Warn("cache clear failed", "error", err)
		return
	}
	for _, k := range keys {
		if strings.HasPrefix(k, keyPrefix) {
			if err := s.storage.Delete(k); err != nil {
				s.logger.Warn("cache delete failed", "key", k, "error", err)
			}
		}
	}
	s.storage.Delete(s.indexKey())
}

// Disabled reports whether the store entered degraded mode.
func (s *Store) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

func (s *Store) deleteEntry(ck string) {
	if err := s.storage.Delete(ck); err != nil {
		s.logger.Warn("cache delete failed", "key", ck, "error", err)
	}
	s.removeFromIndex(ck)
}

// Index handling. The index is a JSON array of namespaced keys in
// insertion order; position 0 is the oldest.

func (s *Store) getIndex() []string {
	raw, ok, err := s.storage.Get(s.indexKey())
	if err != nil || !ok {
		return nil
	}
	var index []string
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil
	}
	return index
}

func (s *Store) saveIndex(index []string) {
	buf, err := json.Marshal(index)
	if err != nil {
		return
	}
	if err := s.storage.Set(s.indexKey(), buf); err != nil {
		s.logger.Warn("cache index write failed", "error", err)
	}
}

func (s *Store) addToIndex(ck string) {
	index := s.getIndex()
	filtered := make([]string, 0, len(index)+1)
	for _, k := range index {
		if k != ck {
			filtered = append(filtered, k)
		}
	}
	s.saveIndex(append(filtered, ck))
}

func (s *Store) removeFromIndex(ck string) {
	index := s.getIndex()
	filtered := make([]string, 0, len(index))
	for _, k := range index {
		if k != ck {
			filtered = append(filtered, k)
		}
	}
	s.saveIndex(filtered)
}

func (s *Store) enforceMaxEntries() {
	index := s.getIndex()
	if len(index) <= s.maxEntries {
		return
	}
	evict := index[:len(index)-s.maxEntries]
	for _, k := range evict {
		if err := s.storage.Delete(k); err != nil {
			s.logger.Warn("cache evict failed", "key", k, "error", err)
		}
	}
	s.saveIndex(index[len(index)-s.maxEntries:])
}

// purgeOlderThan removes namespaced entries older than age, along with
// anything unparseable.
func (s *Store) purgeOlderThan(age time.Duration) {
	keys, err := s.storage.Keys()
	if err != nil {
		return
	}
	cutoff := s.now().UnixMilli() - age.Milliseconds()
	for _, k := range keys {
		if !strings.HasPrefix(k, keyPrefix) || k == s.indexKey() {
			continue
		}
		raw, ok, err := s.storage.Get(k)
		if err != nil || !ok {
			continue
		}
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil || e.Timestamp < cutoff {
			s.deleteEntry(k)
		}
	}
}

// evictOldest removes up to n entries, oldest timestamps first.
func (s *Store) evictOldest(n int) {
	keys, err := s.storage.Keys()
	if err != nil {
		return
	}
	type aged struct {
		key string
		ts  int64
	}
	var entries []aged
	for _, k := range keys {
		if !strings.HasPrefix(k, keyPrefix) || k == s.indexKey() {
			continue
		}
		raw, ok, err := s.storage.Get(k)
		if err != nil || !ok {
			continue
		}
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			s.deleteEntry(k)
			continue
		}
		entries = append(entries, aged{key: k, ts: e.Timestamp})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ts < entries[j].ts })
	if n > len(entries) {
		n = len(entries)
	}
	for _, e := range entries[:n] {
		s.deleteEntry(e.key)
	}
}
