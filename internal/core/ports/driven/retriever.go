package driven

import (
	"context"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

// Retriever queries the external search index for ranked chunks.
// The index is owned by a separate ingestion pipeline; cprchat only
// reads from it.
type Retriever interface {
	// Retrieve returns the ranked chunks for a query.
	Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievedDocument, error)

	// Ping validates the index is reachable.
	Ping(ctx context.Context) error
}
