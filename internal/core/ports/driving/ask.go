package driving

import (
	"context"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

// AskService answers questions grounded in the indexed legal documents.
type AskService interface {
	// Ask retrieves sources for the question, processes them into
	// citation-ready records, and generates a grounded answer.
	Ask(ctx context.Context, req domain.AskRequest) (*domain.Answer, error)

	// AskStream behaves like Ask but delivers the answer text
	// incrementally through onDelta.
	AskStream(ctx context.Context, req domain.AskRequest, onDelta func(string)) (*domain.Answer, error)
}
