// Package memory provides in-memory storage adapters, used mainly in tests
// and when running without a persistent data directory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/cprchat/internal/core/domain"
	"github.com/custodia-labs/cprchat/internal/core/ports/driven"
)

// Ensure FeedbackStore implements the interface.
var _ driven.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore is an in-memory implementation of driven.FeedbackStore.
type FeedbackStore struct {
	mu      sync.RWMutex
	records map[string]domain.Feedback
}

// NewFeedbackStore creates a new in-memory feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{
		records: make(map[string]domain.Feedback),
	}
}

// Save stores or updates a feedback record.
func (s *FeedbackStore) Save(_ context.Context, fb domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[fb.ID] = fb
	return nil
}

// Get retrieves a feedback record by ID.
func (s *FeedbackStore) Get(_ context.Context, id string) (*domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fb, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &fb, nil
}

// List returns feedback records, newest first, up to limit.
func (s *FeedbackStore) List(_ context.Context, limit int) ([]domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Feedback, 0, len(s.records))
	for _, fb := range s.records {
		result = append(result, fb)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes a feedback record.
func (s *FeedbackStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
