package domain

// RetrievalOptions configures a retrieval request against the search index.
type RetrievalOptions struct {
	// Top is the maximum number of chunks to retrieve.
	Top int

	// Filter is an optional index filter expression, e.g. a category filter.
	Filter string

	// SemanticRanking enables the collaborator's semantic reranker.
	SemanticRanking bool

	// SemanticCaptions requests highlighted caption excerpts per chunk.
	// Only honoured when SemanticRanking is enabled.
	SemanticCaptions bool

	// Groups restricts results to chunks tagged with these security groups.
	Groups []string
}

// AskRequest is a grounded question posed against the indexed documents.
type AskRequest struct {
	// Question is the user's question text.
	Question string

	// Retrieval configures the underlying search call.
	Retrieval RetrievalOptions

	// UseSemanticCaptions attaches caption summaries to processed sources.
	UseSemanticCaptions bool
}

// Answer is the grounded response to an AskRequest.
type Answer struct {
	// Text is the generated answer. Empty when no LLM is configured.
	Text string

	// Sources are the processed, citation-ready records the answer is
	// grounded on, in prompt order.
	Sources []SourceRecord

	// Citations lists the citation tokens in source order, so the UI can
	// resolve a bracketed citation in the answer back to its source.
	Citations []string
}
