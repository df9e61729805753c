// Package domain defines the core business entities for cprchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RetrievedDocument: A ranked chunk returned by the search index
//   - Subsection: A numbered rule division extracted from a chunk
//   - SourceRecord: A citation-ready source emitted by the source processor
//   - Feedback: A recorded user verdict on an answer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
