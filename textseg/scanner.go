package textseg

import (
	"iter"

	"github.com/arloliu/rowseg/segment"
)

// CommentMarker is the first character of a comment row.
const CommentMarker = '#'

// Scanner produces the line segments of a text payload one at a time.
//
// Note: Scanner is NOT thread-safe and NOT reusable. Create a new one per payload.
type Scanner struct {
	src      string
	position int // start of the current candidate line
	offset   int // scan index
}

// NewScanner creates a scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Next returns the next non-empty line, or the zero segment.Text when the
// payload is exhausted.
func (s *Scanner) Next() segment.Text {
	for s.offset < len(s.src) {
		c := s.src[s.offset]
		if c != '\r' && c != '\n' {
			s.offset++
			continue
		}

		if s.offset-s.position == 0 {
			// blank line
			s.offset++
			s.position = s.offset

			continue
		}

		seg := segment.NewText(s.src, s.position, s.offset-s.position)
		s.position = s.offset + 1
		if c == '\r' && s.position < len(s.src) && s.src[s.position] == '\n' {
			s.position++
		}
		s.offset = s.position

		return seg
	}

	if s.offset > s.position {
		seg := segment.NewText(s.src, s.position, s.offset-s.position)
		s.position = s.offset

		return seg
	}

	return segment.Text{}
}

// All returns a lazy sequence of the line segments of src.
func All(src string) iter.Seq[segment.Text] {
	return func(yield func(segment.Text) bool) {
		s := NewScanner(src)
		for seg := s.Next(); !seg.IsZero(); seg = s.Next() {
			if !yield(seg) {
				return
			}
		}
	}
}

// Split collects every line segment of src, comments included.
//
// The result is empty, not nil, for a payload with no rows.
func Split(src string) []segment.Text {
	segs := make([]segment.Text, 0, estimateRows(src))
	for seg := range All(src) {
		segs = append(segs, seg)
	}

	return segs
}

// Rows collects the data rows of src: the line segments minus comment rows.
func Rows(src string) []segment.Text {
	return DropComments(Split(src))
}

// IsComment reports whether seg starts with CommentMarker.
func IsComment(seg segment.Text) bool {
	return seg.First() == CommentMarker
}

// DropComments removes comment rows from segs in place and returns the
// shortened slice. Order is preserved.
func DropComments(segs []segment.Text) []segment.Text {
	kept := segs[:0]
	for _, seg := range segs {
		if !IsComment(seg) {
			kept = append(kept, seg)
		}
	}
	clear(segs[len(kept):])

	return kept
}

// estimateRows guesses a capacity from the payload size, assuming short rows.
func estimateRows(src string) int {
	const avgRowLen = 32
	const maxInitial = 4096

	return min(len(src)/avgRowLen+1, maxInitial)
}
