package alert

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository is an in-memory implementation of Repository for tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	alerts []*Alert
}

// NewMemoryRepository creates a new in-memory alert repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert stores a new alert.
func (r *MemoryRepository) Insert(_ context.Context, a *Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *a
	r.alerts = append(r.alerts, &copied)
	return nil
}

// Get returns an alert by ID.
func (r *MemoryRepository) Get(_ context.Context, id string) (*Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.alerts {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// ActiveForCity returns active alerts for a city, most severe first.
func (r *MemoryRepository) ActiveForCity(_ context.Context, city string, f Filter) ([]*Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	var matched []*Alert
	for _, a := range r.alerts {
		if !strings.EqualFold(a.City, city) || !a.ActiveAt(now) {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.Severity != "" && a.Severity != f.Severity {
			continue
		}
		copied := *a
		matched = append(matched, &copied)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Severity.Rank() != matched[j].Severity.Rank() {
			return matched[i].Severity.Rank() > matched[j].Severity.Rank()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// HasActiveOverlap reports whether an active same-city same-type alert
// with severity at or above the given one exists.
func (r *MemoryRepository) HasActiveOverlap(_ context.Context, city string, t Type, s Severity) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	for _, a := range r.alerts {
		if strings.EqualFold(a.City, city) && a.Type == t && a.ActiveAt(now) && a.Severity.Rank() >= s.Rank() {
			return true, nil
		}
	}
	return false, nil
}

// History returns a page of alerts for a city, newest first.
func (r *MemoryRepository) History(_ context.Context, city string, t Type, page Page) (*HistoryResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := page.Limit
	if limit <= 0 {
		limit = 50
	}

	var matched []*Alert
	for _, a := range r.alerts {
		if !strings.EqualFold(a.City, city) {
			continue
		}
		if t != "" && a.Type != t {
			continue
		}
		copied := *a
		matched = append(matched, &copied)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if page.Skip < len(matched) {
		matched = matched[page.Skip:]
	} else {
		matched = nil
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return &HistoryResult{
		Alerts:  matched,
		Total:   total,
		HasMore: page.Skip+len(matched) < total,
	}, nil
}

// All returns every stored alert, for test assertions.
func (r *MemoryRepository) All() []*Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Alert, 0, len(r.alerts))
	for _, a := range r.alerts {
		copied := *a
		out = append(out, &copied)
	}
	return out
}

// Ensure MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)
