package domain

import "time"

// RetrievedDocument is a ranked chunk returned by the search index.
// It is owned by the search collaborator; cprchat only reads it.
type RetrievedDocument struct {
	// ID is the search index key for this chunk.
	ID string

	// Content is the full text of the chunk.
	Content string

	// SourcePage labels the page the chunk came from.
	// May encode a page anchor, e.g. "CPR Part 31#page=4".
	SourcePage string

	// SourceFile is the name of the originating file.
	SourceFile string

	// Category is an optional classification tag, e.g. "court_guide".
	Category string

	// StorageURL is the blob store location of the source file.
	StorageURL string

	// Captions holds semantic captions when semantic ranking is enabled.
	Captions []Caption

	// Score is the relevance score from the search index.
	Score float64

	// RerankerScore is the semantic reranker score, when available.
	RerankerScore float64

	// Groups lists the access-control group tags on the chunk.
	Groups []string

	// UpdatedAt is when the chunk was last indexed.
	UpdatedAt time.Time
}

// Validate checks the fields cprchat requires from the search collaborator.
// Optional fields (category, storage URL, captions) may be absent.
func (d *RetrievedDocument) Validate() error {
	if d.ID == "" {
		return ErrInvalidInput
	}
	return nil
}

// Caption is a highlighted excerpt returned by the search collaborator's
// semantic ranking feature, used to justify a chunk's relevance.
type Caption struct {
	// Text is the caption excerpt.
	Text string

	// Highlights are the emphasised spans within the text.
	Highlights []string

	// Additional carries provider-specific caption properties unchanged.
	Additional map[string]any
}
