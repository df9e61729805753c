package subsections

import (
	"strings"
	"testing"
)

func TestExtract_NoMarkers(t *testing.T) {
	e := NewExtractor()
	segments := e.Extract("The overriding objective of dealing with cases justly.")
	if segments != nil {
		t.Errorf("expected nil for content without markers, got %d segments", len(segments))
	}
}

func TestExtract_EmptyContent(t *testing.T) {
	e := NewExtractor()
	if segments := e.Extract(""); segments != nil {
		t.Errorf("expected nil for empty content, got %d segments", len(segments))
	}
}

func TestExtract_SingleMarker(t *testing.T) {
	e := NewExtractor()
	segments := e.Extract("31.6 Standard disclosure requires a party to disclose documents.")
	if segments != nil {
		t.Errorf("expected nil for a single marker, got %d segments", len(segments))
	}
}

func TestExtract_RepeatedMarker(t *testing.T) {
	// Two occurrences of the same label are not two distinct subsections.
	e := NewExtractor()
	segments := e.Extract("1.2 First mention.\n\n1.2 Repeated mention.")
	if segments != nil {
		t.Errorf("expected nil for repeated marker, got %d segments", len(segments))
	}
}

func TestExtract_TwoSubsections(t *testing.T) {
	e := NewExtractor()
	segments := e.Extract("1.2 Foo bar.\n\n2.1 Baz qux.")

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Label != "1.2" {
		t.Errorf("expected first label '1.2', got %q", segments[0].Label)
	}
	if segments[1].Label != "2.1" {
		t.Errorf("expected second label '2.1', got %q", segments[1].Label)
	}
	if segments[0].Content != "1.2 Foo bar." {
		t.Errorf("unexpected first content: %q", segments[0].Content)
	}
	if segments[1].Content != "2.1 Baz qux." {
		t.Errorf("unexpected second content: %q", segments[1].Content)
	}
}

func TestExtract_DeepMarkers(t *testing.T) {
	e := NewExtractor()
	segments := e.Extract("1.2.1 First limb.\n1.2.2 Second limb.")

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Label != "1.2.1" || segments[1].Label != "1.2.2" {
		t.Errorf("unexpected labels: %q, %q", segments[0].Label, segments[1].Label)
	}
}

func TestExtract_PreambleStaysWithFirstSegment(t *testing.T) {
	e := NewExtractor()
	content := "PART 31 DISCLOSURE\n31.1 Scope of this Part.\n31.2 Meaning of disclosure."
	segments := e.Extract(content)

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if !strings.HasPrefix(segments[0].Content, "PART 31 DISCLOSURE") {
		t.Errorf("expected preamble in first segment, got %q", segments[0].Content)
	}
}

func TestExtract_PartitionCoversAllContent(t *testing.T) {
	// The concatenated segments must reproduce the input up to
	// whitespace normalisation.
	e := NewExtractor()
	content := "1.1 The overriding objective.\n\n1.2 Application by the court.\n\n1.3 Duty of the parties."
	segments := e.Extract(content)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	normalise := func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	}

	var joined []string
	for _, seg := range segments {
		joined = append(joined, seg.Content)
	}
	if normalise(strings.Join(joined, " ")) != normalise(content) {
		t.Errorf("segments do not partition the content:\n%q\nvs\n%q",
			strings.Join(joined, " "), content)
	}
}

func TestExtract_MarkerMidLine(t *testing.T) {
	// Markers after whitespace are recognised, not just at line starts.
	e := NewExtractor()
	segments := e.Extract("Rule 3.1 gives case management powers. Rule 3.4 allows striking out.")

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Label != "3.1" || segments[1].Label != "3.4" {
		t.Errorf("unexpected labels: %q, %q", segments[0].Label, segments[1].Label)
	}
}

func TestExtract_TrimMarkerEcho(t *testing.T) {
	e := NewExtractor(WithTrimMarkerEcho())
	segments := e.Extract("1.2 Foo bar.\n\n2.1 Baz qux.")

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Content != "Foo bar." {
		t.Errorf("expected marker echo stripped, got %q", segments[0].Content)
	}
	if segments[1].Content != "Baz qux." {
		t.Errorf("expected marker echo stripped, got %q", segments[1].Content)
	}
}

func TestFindMarkers_Positions(t *testing.T) {
	content := "1.2 Foo\n2.1 Bar"
	markers := findMarkers(content)

	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if markers[0].start != 0 {
		t.Errorf("expected first marker at 0, got %d", markers[0].start)
	}
	if content[markers[1].start:markers[1].start+3] != "2.1" {
		t.Errorf("second marker position does not point at its label")
	}
}
