package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/cprchat/internal/core/domain"
	"github.com/custodia-labs/cprchat/internal/core/ports/driven"
	"github.com/custodia-labs/cprchat/internal/core/ports/driving"
)

// Ensure FeedbackRecorder implements the interface.
var _ driving.FeedbackService = (*FeedbackRecorder)(nil)

// FeedbackRecorder records and lists user verdicts on generated answers.
type FeedbackRecorder struct {
	store driven.FeedbackStore
}

// NewFeedbackRecorder creates a new feedback service.
func NewFeedbackRecorder(store driven.FeedbackStore) *FeedbackRecorder {
	return &FeedbackRecorder{store: store}
}

// Record validates and persists a feedback record, filling in its ID
// and timestamp.
func (s *FeedbackRecorder) Record(ctx context.Context, fb domain.Feedback) (*domain.Feedback, error) {
	if s.store == nil {
		return nil, domain.ErrFeedbackUnavailable
	}
	if strings.TrimSpace(fb.Question) == "" || !fb.Rating.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	fb.ID = uuid.New().String()
	fb.CreatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, fb); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return &fb, nil
}

// List returns recorded feedback, newest first.
func (s *FeedbackRecorder) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if s.store == nil {
		return nil, domain.ErrFeedbackUnavailable
	}
	return s.store.List(ctx, limit)
}
