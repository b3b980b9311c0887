package flood

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepository is an in-memory implementation of Repository for tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	readings []*Reading
}

// NewMemoryRepository creates a new in-memory flood repository.
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

// Ensure MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)
