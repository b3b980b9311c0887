package heatwave

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepository is an in-memory implementation of Repository for tests
// and local development without a database.
type MemoryRepository struct {
	mu       sync.RWMutex
	readings []*Reading
}

// NewMemoryRepository creates a new in-memory heatwave repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert stores a new reading.
func (r *MemoryRepository) Insert(_ context.Context, reading *Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *reading
	r.readings = append(r.readings, &copied)
	return nil
}

// Latest returns the newest reading for a city.
func (r *MemoryRepository) Latest(_ context.Context, city string) (*Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Reading
	for _, reading := range r.readings {
		if !strings.EqualFold(reading.City, city) {
			continue
		}
		if latest == nil || reading.RecordedAt.After(latest.RecordedAt) {
			latest = reading
		}
	}
	if latest == nil {
		return nil, ErrNoReading
	}

	copied := *latest
	return &copied, nil
}

// History returns up to limit readings for a city, newest first.
func (r *MemoryRepository) History(_ context.Context, city string, limit int) ([]*Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 24
	}

	var matched []*Reading
	for _, reading := range r.readings {
		if strings.EqualFold(reading.City, city) {
			copied := *reading
			matched = append(matched, &copied)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].RecordedAt.After(matched[j].RecordedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Count returns the number of stored readings.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.readings)
}

// Ensure MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)
