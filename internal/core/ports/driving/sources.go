package driving

import "github.com/custodia-labs/cprchat/internal/core/domain"

// SourceProcessor turns retrieved chunks into ordered, citation-ready
// source records. It is a pure per-call transform: no I/O, no shared
// state, safe to invoke concurrently for independent document lists.
type SourceProcessor interface {
	// ProcessDocuments expands each document into per-subsection records
	// where subsections are found, falling back to one whole-document
	// record otherwise. Document order is preserved; subsection records
	// expand in place, ordered by their numeric sort key.
	ProcessDocuments(docs []domain.RetrievedDocument, useSemanticCaptions bool) []domain.SourceRecord
}
