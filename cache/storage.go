package cache

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrQuotaExceeded is returned by a Storage when a write would exceed
// its byte budget.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Storage is the persistence medium underneath the Store. Keys are
// opaque strings; values are small JSON blobs.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

// DirStorage persists each key as one file in a directory. An optional
// byte quota makes writes fail with ErrQuotaExceeded once the directory
// would grow past it.
type DirStorage struct {
	dir      string
	maxBytes int64
}

// NewDirStorage creates the directory if needed. maxBytes <= 0 means
// unbounded.
func NewDirStorage(dir string, maxBytes int64) (*DirStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DirStorage{dir: dir, maxBytes: maxBytes}, nil
}

func (s *DirStorage) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *DirStorage) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *DirStorage) Set(key string, value []byte) error {
	if s.maxBytes > 0 {
		used, err := s.usedBytes()
		if err == nil {
			var old int64
			if info, err := os.Stat(s.path(key)); err == nil {
				old = info.Size()
			}
			if used-old+int64(len(value)) > s.maxBytes {
				return ErrQuotaExceeded
			}
		}
	}

	// Write to a temp file, then rename.
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

func (s *DirStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *DirStorage) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *DirStorage) usedBytes() (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if info, err := entry.Info(); err == nil {
			total += info.Size()
		}
	}
	return total, nil
}

// MemStorage is an in-memory Storage with the same quota semantics,
// used in tests and as a fallback when no cache directory is writable.
type MemStorage struct {
	mu       sync.Mutex
	data     map[string][]byte
	maxBytes int64
}

// NewMemStorage returns an in-memory storage. maxBytes <= 0 means
// unbounded.
func NewMemStorage(maxBytes int64) *MemStorage {
	return &MemStorage{data: make(map[string][]byte), maxBytes: maxBytes}
}

func (s *MemStorage) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemStorage) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxBytes > 0 {
		var used int64
		for k, v := range s.data {
			if k == key {
				continue
			}
			used += int64(len(v))
		}
		if used+int64(len(value)) > s.maxBytes {
			return ErrQuotaExceeded
		}
	}
	s.data[key] = value
	return nil
}

func (s *MemStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemStorage) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}
