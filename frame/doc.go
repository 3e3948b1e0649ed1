// Package frame splits length-prefixed binary payloads into row segments and
// writes payloads in the same format.
//
// # Wire Format
//
// A payload is a concatenation of records with no header, trailer or padding:
//
//	+----------------------+---------------------+
//	| length L (uint32 LE) | L bytes of row data |  ... repeated to the end
//	+----------------------+---------------------+
//
// The byte at the lowest address is the least significant byte of L.
//
// # Decoding
//
// SplitBytes decodes an in-memory buffer and SplitStream a seekable stream. Both
// run the same algorithm over a different byte source, so the same bytes yield
// segments with identical offsets and lengths. A payload that ends inside a
// length prefix, or whose prefix points past the end, fails with
// errs.ErrMalformedFraming; segments produced before the failure must be
// discarded. The decoder never retries.
//
// Stream decoding reads prefixes and seeks forward over row data. It never seeks
// backwards, except to restore the start position after measuring a stream that
// does not report its own size.
//
// # Encoding
//
//	enc := frame.NewEncoder()
//	defer enc.Reset()
//	_ = enc.WriteString("ab")
//	_ = enc.WriteString("xyz")
//	payload := enc.Finish() // [2 0 0 0 a b 3 0 0 0 x y z]
package frame
