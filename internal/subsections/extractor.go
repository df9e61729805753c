package subsections

import (
	"regexp"
	"strings"
)

// markerPattern matches a dotted numeric subsection marker ("31.6",
// "1.2.3") at the start of a line or after whitespace. The marker itself
// is capture group 1 so match positions exclude the preceding separator.
var markerPattern = regexp.MustCompile(`(?:^|[ \t\n\r])(\d+(?:\.\d+)+)`)

// marker is a located subsection label within a content string.
type marker struct {
	label string
	start int // offset of the label itself
}

// findMarkers scans content for subsection markers and returns them in
// document order. The segmentation algorithm works only with the returned
// positions, so marker syntax can be extended here without touching it.
func findMarkers(content string) []marker {
	matches := markerPattern.FindAllStringSubmatchIndex(content, -1)
	if matches == nil {
		return nil
	}

	markers := make([]marker, 0, len(matches))
	for _, m := range matches {
		// Group 1 bounds are at indices 2 and 3.
		start, end := m[2], m[3]
		markers = append(markers, marker{
			label: content[start:end],
			start: start,
		})
	}
	return markers
}

// Segment is one subsection span extracted from a chunk.
type Segment struct {
	// Label is the subsection marker as matched, e.g. "31.6".
	Label string

	// Content is the span belonging to this subsection, trimmed.
	Content string
}

// Extractor partitions chunk text into subsection segments.
type Extractor struct {
	trimMarkerEcho bool
}

// Option configures the extractor.
type Option func(*Extractor)

// WithTrimMarkerEcho strips the leading echo of the marker label from
// each segment's content. By default the marker is kept so that the
// concatenated segments reproduce the original text.
func WithTrimMarkerEcho() Option {
	return func(e *Extractor) {
		e.trimMarkerEcho = true
	}
}

// NewExtractor creates a new subsection extractor with the given options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract partitions content into one segment per subsection marker.
// Each segment runs from its marker to the next marker or end of text;
// any preamble before the first marker stays attached to the first
// segment so no character of the input is lost.
//
// Returns nil when fewer than two distinct markers are found. That is
// the normal "not a multi-subsection document" signal, not an error:
// the caller falls back to a whole-document citation.
func (e *Extractor) Extract(content string) []Segment {
	if content == "" {
		return nil
	}

	markers := findMarkers(content)
	if len(markers) == 0 {
		return nil
	}

	distinct := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		distinct[m.label] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil
	}

	segments := make([]Segment, 0, len(markers))
	for i, m := range markers {
		start := m.start
		if i == 0 {
			start = 0 // keep preamble with the first segment
		}
		end := len(content)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}

		span := content[start:end]
		if e.trimMarkerEcho {
			span = strings.TrimPrefix(strings.TrimSpace(span), m.label)
		}

		segments = append(segments, Segment{
			Label:   m.label,
			Content: strings.TrimSpace(span),
		})
	}

	return segments
}
