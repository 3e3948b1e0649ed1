// Package textseg splits a newline-delimited text payload into row segments.
//
// A row is one non-empty line. Lines end with "\n", "\r" or "\r\n"; the pair
// "\r\n" is consumed as a single terminator. Blank lines never produce a row and
// the last line does not need a terminator. Each produced segment.Text keeps its
// offset into the original string, terminator excluded.
//
// The scanner does not interpret rows. Comment filtering is a separate step:
// a row whose first character is '#' is a comment (first character only, leading
// whitespace is not trimmed). Rows applies it; Split and All do not.
//
// # Usage
//
//	for seg := range textseg.All(payload) {
//	    if textseg.IsComment(seg) {
//	        continue
//	    }
//	    fmt.Println(seg.Offset, seg.String())
//	}
//
// Each call re-scans from the start of the payload; sequences are not restartable.
package textseg
