package driving

import (
	"context"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

// FeedbackService records and lists user verdicts on generated answers.
type FeedbackService interface {
	// Record validates and persists a feedback record, filling in its
	// ID and timestamp. Returns the stored record.
	Record(ctx context.Context, fb domain.Feedback) (*domain.Feedback, error)

	// List returns recorded feedback, newest first.
	List(ctx context.Context, limit int) ([]domain.Feedback, error)
}
