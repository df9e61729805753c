package subsections

import (
	"math"
	"strconv"
	"strings"
)

// unparseable is the sentinel key value for labels with non-numeric
// components. It sorts after every real component, so labels that fail
// to parse order after all fully numeric ones and compare equal to each
// other. Callers must use a stable sort so unparseable labels keep
// their relative input order among themselves.
const unparseable = math.MaxInt

// Key is a comparable representation of a subsection label. Keys order
// component-wise, with a strict prefix sorting first ("1" < "1.1").
// This gives numeric ordering: "2.10" sorts after "2.9", unlike the
// lexical string ordering.
type Key []int

// SortKey derives a Key from a subsection label by splitting on "." and
// parsing each component as an integer. A label with any non-numeric
// component never causes an error; its whole key degrades to the
// maximal sentinel instead.
func SortKey(label string) Key {
	parts := strings.Split(label, ".")
	key := make(Key, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Key{unparseable}
		}
		key[i] = n
	}
	return key
}

// Compare returns -1, 0, or 1 as k orders before, equal to, or after other.
func (k Key) Compare(other Key) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		switch {
		case k[i] < other[i]:
			return -1
		case k[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

// Less reports whether k orders before other.
func (k Key) Less(other Key) bool {
	return k.Compare(other) < 0
}
