package driven

import (
	"context"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

// FeedbackStore persists user feedback on generated answers.
// Backed by SQLite in the default deployment.
type FeedbackStore interface {
	// Save stores a feedback record.
	Save(ctx context.Context, fb domain.Feedback) error

	// Get retrieves a feedback record by ID.
	Get(ctx context.Context, id string) (*domain.Feedback, error)

	// List returns feedback records, newest first.
	List(ctx context.Context, limit int) ([]domain.Feedback, error)

	// Delete removes a feedback record.
	Delete(ctx context.Context, id string) error
}
