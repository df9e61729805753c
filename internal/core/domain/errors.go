package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Asking degrades to returning sources without a generated answer.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrSearchUnavailable indicates the search collaborator is not configured.
	// Nothing can be retrieved or answered without it.
	ErrSearchUnavailable = errors.New("search service unavailable")

	// ErrFeedbackUnavailable indicates no feedback store is configured.
	ErrFeedbackUnavailable = errors.New("feedback store unavailable")
)
