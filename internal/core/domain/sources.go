package domain

// Subsection is a numbered rule division extracted from a chunk,
// e.g. CPR rule "31.6". It exists only for the duration of one
// processing call and is never persisted.
type Subsection struct {
	// Label is the subsection marker as matched, e.g. "31.6" or "1.2.3".
	Label string

	// Content is the text span belonging to this subsection, trimmed.
	Content string

	// DocumentID references the parent document's identifier.
	DocumentID string
}

// SourceRecord is a citation-ready source emitted by the source processor.
// It is either a subsection-level record (IsSubsection true) or a
// whole-document record carrying the same fields.
type SourceRecord struct {
	// ID identifies this record; synthesised for subsection records,
	// the original document ID otherwise.
	ID string

	// SubsectionID is the subsection label, empty for whole-document records.
	SubsectionID string

	// IsSubsection reports whether this record covers a single subsection.
	IsSubsection bool

	// OriginalDocID is the ID of the document this record was derived from.
	OriginalDocID string

	// TotalSubsections is the number of subsections extracted from the
	// original document. Zero for whole-document records.
	TotalSubsections int

	// Content is the subsection span, or the full document content.
	Content string

	// SourcePage labels the page of the original document.
	SourcePage string

	// SourceFile is the originating file name.
	SourceFile string

	// Category is copied from the original document; empty when absent.
	Category string

	// StorageURL is copied from the original document; empty when absent.
	StorageURL string

	// Citation is the UI-facing citation token for this record.
	Citation string

	// Captions are passed through when semantic captions are requested.
	Captions []Caption

	// CaptionSummary joins the caption texts, when captions are attached.
	CaptionSummary string
}
