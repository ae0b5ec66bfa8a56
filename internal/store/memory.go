package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/broadway-air/airquality-dashboard/internal/airquality"
)

var (
	// ErrNotFound is returned when no readings have been loaded.
	ErrNotFound = errors.New("no readings loaded")
)

// MemoryStore holds the loaded reading collection. The collection is replaced
// wholesale (at startup and on an optional scheduled refresh) and is read-only
// in between, so readers share the same backing slice.
type MemoryStore struct {
	mu       sync.RWMutex
	readings []airquality.Reading
	version  uint64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Replace swaps in a new dataset, sorted by interval start then sensor id,
// and bumps the version so memoized views over the old dataset expire.
func (s *MemoryStore) Replace(readings []airquality.Reading) {
	sorted := append([]airquality.Reading(nil), readings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].From.Equal(sorted[j].From) {
			return sorted[i].From.Before(sorted[j].From)
		}
		return sorted[i].SensorID < sorted[j].SensorID
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = sorted
	s.version++
}

// All returns the loaded readings. Callers must treat the slice as read-only.
func (s *MemoryStore) All() ([]airquality.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.readings) == 0 {
		return nil, ErrNotFound
	}
	return s.readings, nil
}

// Version identifies the current dataset; it changes on every Replace.
func (s *MemoryStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Len reports how many readings are loaded.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}
