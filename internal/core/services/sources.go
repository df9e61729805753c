package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/cprchat/internal/core/domain"
	"github.com/custodia-labs/cprchat/internal/core/ports/driving"
	"github.com/custodia-labs/cprchat/internal/logger"
	"github.com/custodia-labs/cprchat/internal/subsections"
)

// Ensure SourceProcessorService implements the interface.
var _ driving.SourceProcessor = (*SourceProcessorService)(nil)

// captionJoiner separates caption texts in the caption summary.
const captionJoiner = " . "

// SourceProcessorService turns retrieved chunks into ordered,
// citation-ready source records. It holds no mutable state; a single
// instance may serve concurrent requests.
type SourceProcessorService struct {
	extractor *subsections.Extractor
}

// NewSourceProcessor creates a new source processor.
// A nil extractor gets the default marker patterns.
func NewSourceProcessor(extractor *subsections.Extractor) *SourceProcessorService {
	if extractor == nil {
		extractor = subsections.NewExtractor()
	}
	return &SourceProcessorService{extractor: extractor}
}

// ProcessDocuments expands each document into per-subsection records
// where at least two subsections are found, falling back to a single
// whole-document record otherwise. Input document order is preserved;
// subsection records expand in place, sorted ascending by numeric key.
// Input documents are never mutated.
func (s *SourceProcessorService) ProcessDocuments(
	docs []domain.RetrievedDocument, useSemanticCaptions bool,
) []domain.SourceRecord {
	records := make([]domain.SourceRecord, 0, len(docs))

	for i := range docs {
		doc := &docs[i]

		segments := s.extractor.Extract(doc.Content)
		if len(segments) >= 2 {
			logger.Debug("Document %s: %d subsections", doc.ID, len(segments))
			records = append(records, s.subsectionRecords(doc, segments, useSemanticCaptions)...)
			continue
		}

		logger.Debug("Document %s: no subsection split", doc.ID)
		records = append(records, s.wholeDocumentRecord(doc, useSemanticCaptions))
	}

	return records
}

// subsectionRecords builds one record per extracted segment, ordered by
// the numeric sort key rather than extraction order.
func (s *SourceProcessorService) subsectionRecords(
	doc *domain.RetrievedDocument, segments []subsections.Segment, useSemanticCaptions bool,
) []domain.SourceRecord {
	ordered := make([]subsections.Segment, len(segments))
	copy(ordered, segments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return subsections.SortKey(ordered[i].Label).Less(subsections.SortKey(ordered[j].Label))
	})

	records := make([]domain.SourceRecord, 0, len(ordered))
	for _, seg := range ordered {
		rec := domain.SourceRecord{
			ID:               doc.ID + "#" + seg.Label,
			SubsectionID:     seg.Label,
			IsSubsection:     true,
			OriginalDocID:    doc.ID,
			TotalSubsections: len(ordered),
			Content:          seg.Content,
			SourcePage:       doc.SourcePage,
			SourceFile:       doc.SourceFile,
			Category:         doc.Category,
			StorageURL:       doc.StorageURL,
			Citation:         subsections.BuildCitation(seg.Label, doc.SourcePage, doc.SourceFile),
		}
		s.attachCaptions(&rec, doc, useSemanticCaptions)
		records = append(records, rec)
	}

	return records
}

// wholeDocumentRecord builds the fallback record for documents that do
// not split into multiple subsections.
func (s *SourceProcessorService) wholeDocumentRecord(
	doc *domain.RetrievedDocument, useSemanticCaptions bool,
) domain.SourceRecord {
	rec := domain.SourceRecord{
		ID:            doc.ID,
		IsSubsection:  false,
		OriginalDocID: doc.ID,
		Content:       doc.Content,
		SourcePage:    doc.SourcePage,
		SourceFile:    doc.SourceFile,
		Category:      doc.Category,
		StorageURL:    doc.StorageURL,
		Citation:      subsections.BuildCitation("", doc.SourcePage, doc.SourceFile),
	}
	s.attachCaptions(&rec, doc, useSemanticCaptions)
	return rec
}

// attachCaptions copies semantic captions through to a record and builds
// the caption summary, preserving caption order.
func (s *SourceProcessorService) attachCaptions(
	rec *domain.SourceRecord, doc *domain.RetrievedDocument, useSemanticCaptions bool,
) {
	if !useSemanticCaptions || len(doc.Captions) == 0 {
		return
	}

	rec.Captions = make([]domain.Caption, len(doc.Captions))
	copy(rec.Captions, doc.Captions)

	texts := make([]string, 0, len(doc.Captions))
	for _, c := range doc.Captions {
		texts = append(texts, c.Text)
	}
	rec.CaptionSummary = strings.Join(texts, captionJoiner)
}
