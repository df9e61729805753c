package subsections

import "strings"

// citationSeparator joins citation fields.
const citationSeparator = ", "

// BuildCitation composes the UI-facing citation token for a source.
// Field order is fixed: subsection label (when present), then the source
// page label, then the source file name, joined by ", ". When the label
// is empty the citation begins directly with the source page.
func BuildCitation(subsectionLabel, sourcePage, sourceFile string) string {
	fields := make([]string, 0, 3)
	if subsectionLabel != "" {
		fields = append(fields, subsectionLabel)
	}
	if sourcePage != "" {
		fields = append(fields, sourcePage)
	}
	if sourceFile != "" {
		fields = append(fields, sourceFile)
	}
	return strings.Join(fields, citationSeparator)
}
