// Package subsections splits chunk text into numbered legal subsections
// and builds the citation tokens the chat UI uses to link an answer
// sentence back to an exact rule subsection.
//
// The package has three entry points that together form one cohesive
// transform: Extractor.Extract locates subsection markers ("31.6",
// "1.2.3") and partitions the text, SortKey derives a comparable key for
// numeric ordering, and BuildCitation composes the citation string.
// All three are pure; none performs I/O.
package subsections
