package frame

import (
	"io"
	"iter"

	"github.com/arloliu/rowseg/endian"
	"github.com/arloliu/rowseg/segment"
)

// SplitBytes decodes every row of a length-prefixed buffer.
//
// The returned segments alias buf. An empty buffer yields an empty slice.
//
// Returns:
//   - []segment.Bytes: Row segments in payload order
//   - error: errs.ErrMalformedFraming if the buffer is truncated
func SplitBytes(buf []byte) ([]segment.Bytes, error) {
	segs := make([]segment.Bytes, 0, estimateRows(int64(len(buf))))
	err := decode(&bufferSource{data: buf}, func(sp segment.Span) bool {
		segs = append(segs, segment.NewBytes(buf, int(sp.Offset), int(sp.Length)))
		return true
	})
	if err != nil {
		return nil, err
	}

	return segs, nil
}

// SplitStream decodes every row of a length-prefixed stream, starting at the
// stream's current position and leaving it at the end.
//
// Segment offsets are absolute stream positions. The stream must not be used by
// anyone else until SplitStream returns.
//
// Returns:
//   - []segment.Stream: Row segments in payload order
//   - error: errs.ErrMalformedFraming if the stream is truncated, or the
//     stream's own seek/read error
func SplitStream(r io.ReadSeeker) ([]segment.Stream, error) {
	src, err := newStreamSource(r)
	if err != nil {
		return nil, err
	}

	segs := make([]segment.Stream, 0, estimateRows(src.end()-src.pos()))
	err = decode(src, func(sp segment.Span) bool {
		segs = append(segs, segment.NewStream(r, sp.Offset, sp.Length))
		return true
	})
	if err != nil {
		return nil, err
	}

	return segs, nil
}

// AllBytes returns a lazy sequence over the rows of buf.
//
// On malformed input the sequence yields one final zero segment with the error.
func AllBytes(buf []byte) iter.Seq2[segment.Bytes, error] {
	return func(yield func(segment.Bytes, error) bool) {
		err := decode(&bufferSource{data: buf}, func(sp segment.Span) bool {
			return yield(segment.NewBytes(buf, int(sp.Offset), int(sp.Length)), nil)
		})
		if err != nil {
			yield(segment.Bytes{}, err)
		}
	}
}

// AllStream returns a lazy sequence over the rows of r.
//
// Reading a segment's content through a stream without io.ReaderAt moves the
// stream cursor; do that only after the iteration finished.
func AllStream(r io.ReadSeeker) iter.Seq2[segment.Stream, error] {
	return func(yield func(segment.Stream, error) bool) {
		src, err := newStreamSource(r)
		if err != nil {
			yield(segment.Stream{}, err)
			return
		}

		err = decode(src, func(sp segment.Span) bool {
			return yield(segment.NewStream(r, sp.Offset, sp.Length), nil)
		})
		if err != nil {
			yield(segment.Stream{}, err)
		}
	}
}

// estimateRows guesses a capacity from the payload size, assuming small rows.
func estimateRows(size int64) int {
	const avgRecordLen = endian.PrefixSize + 28
	const maxInitial = 4096

	return int(min(size/avgRecordLen+1, maxInitial))
}
