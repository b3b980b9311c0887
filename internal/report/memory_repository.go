package report

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for tests and local
// development.
type MemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory report repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reports: make(map[string]*Report)}
}

func (r *MemoryRepository) Insert(_ context.Context, rep *Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *rep
	r.reports[rep.ID] = &clone
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rep
	return &clone, nil
}

func (r *MemoryRepository) ListByCity(_ context.Context, city string, f Filter) (*ListResult, error) {
	return r.listMatching(f, func(rep *Report) bool {
		return strings.EqualFold(rep.City, city)
	})
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string, f Filter) (*ListResult, error) {
	return r.listMatching(f, func(rep *Report) bool {
		return rep.UserID == userID
	})
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep, ok := r.reports[id]
	if !ok {
		return ErrNotFound
	}
	rep.Status = status
	rep.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) listMatching(f Filter, match func(*Report) bool) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Report
	for _, rep := range r.reports {
		if !match(rep) {
			continue
		}
		if f.Type != "" && rep.Type != f.Type {
			continue
		}
		if f.Status != "" && rep.Status != f.Status {
			continue
		}
		clone := *rep
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	result := &ListResult{Total: len(matched), Limit: limit, Offset: offset}
	if offset < len(matched) {
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		result.Reports = matched[offset:end]
	}
	return result, nil
}
