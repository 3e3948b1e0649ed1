// Package segment defines non-owning row views into a caller-owned payload.
//
// A segment is an (offset, length) pair plus a reference to the buffer it was cut
// from. It never copies: Text.String and Bytes.Bytes return sub-slices of the
// original payload, so a segment is valid only while its payload is alive. Once
// the payload owner releases the asset, every segment cut from it must be dropped.
//
// The zero value of each segment type carries no buffer reference and marks the
// end of a row sequence.
package segment

import (
	"errors"
	"fmt"
	"io"
)

// Span is the [Offset, Offset+Length) range shared by all segment kinds.
type Span struct {
	Offset int64
	Length int64
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int64 {
	return s.Offset + s.Length
}

// IsZero reports whether the span is the empty sentinel.
func (s Span) IsZero() bool {
	return s.Offset == 0 && s.Length == 0
}

// Overlaps reports whether s and o share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Offset < o.End() && o.Offset < s.End()
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,+%d)", s.Offset, s.Length)
}

// Text is a view of one line in a text payload, terminator excluded.
type Text struct {
	Span
	src string
}

// NewText returns a text segment over src. It panics if the span is out of range.
func NewText(src string, offset, length int) Text {
	checkRange(offset, length, len(src))

	return Text{Span: Span{Offset: int64(offset), Length: int64(length)}, src: src}
}

// IsZero reports whether t is the end-of-rows sentinel.
func (t Text) IsZero() bool {
	return t.Span.IsZero() && t.src == ""
}

// String returns the viewed characters without copying.
func (t Text) String() string {
	return t.src[t.Offset:t.End()]
}

// First returns the first byte of the line, or 0 for an empty segment.
func (t Text) First() byte {
	if t.Length == 0 {
		return 0
	}

	return t.src[t.Offset]
}

// Bytes is a view of one row in an in-memory byte payload, length prefix excluded.
type Bytes struct {
	Span
	src []byte
}

// NewBytes returns a byte segment over src. It panics if the span is out of range.
func NewBytes(src []byte, offset, length int) Bytes {
	checkRange(offset, length, len(src))

	return Bytes{Span: Span{Offset: int64(offset), Length: int64(length)}, src: src}
}

// IsZero reports whether b is the end-of-rows sentinel.
func (b Bytes) IsZero() bool {
	return b.Span.IsZero() && b.src == nil
}

// Bytes returns the viewed bytes as a sub-slice of the payload.
//
// The returned slice aliases the payload; it must not be modified or retained
// past the payload's release. Its capacity is clipped to the row.
func (b Bytes) Bytes() []byte {
	return b.src[b.Offset:b.End():b.End()]
}

// Stream is a view of one row in a seekable byte stream, length prefix excluded.
//
// Offsets are absolute stream positions. Reading the row moves the shared stream
// cursor, so a stream must not be read concurrently through several segments.
type Stream struct {
	Span
	src io.ReadSeeker
}

// NewStream returns a stream segment over src.
func NewStream(src io.ReadSeeker, offset, length int64) Stream {
	if offset < 0 || length < 0 {
		panic(fmt.Sprintf("segment: invalid stream span offset=%d length=%d", offset, length))
	}

	return Stream{Span: Span{Offset: offset, Length: length}, src: src}
}

// IsZero reports whether s is the end-of-rows sentinel.
func (s Stream) IsZero() bool {
	return s.Span.IsZero() && s.src == nil
}

// Reader returns a reader limited to the row bytes.
//
// When the stream implements io.ReaderAt the reader does not touch the stream
// cursor. Otherwise the stream is positioned at Offset on the first Read.
func (s Stream) Reader() io.Reader {
	if ra, ok := s.src.(io.ReaderAt); ok {
		return io.NewSectionReader(ra, s.Offset, s.Length)
	}

	return &seekingReader{seg: s}
}

// ReadAll reads the row bytes into a newly allocated slice.
func (s Stream) ReadAll() ([]byte, error) {
	if s.src == nil {
		return nil, errors.New("segment: stream segment has no source")
	}

	buf := make([]byte, s.Length)
	if _, err := io.ReadFull(s.Reader(), buf); err != nil {
		return nil, fmt.Errorf("segment: read %s: %w", s.Span, err)
	}

	return buf, nil
}

type seekingReader struct {
	seg    Stream
	lr     *io.LimitedReader
	seeked bool
}

func (r *seekingReader) Read(p []byte) (int, error) {
	if !r.seeked {
		if _, err := r.seg.src.Seek(r.seg.Offset, io.SeekStart); err != nil {
			return 0, err
		}
		r.lr = &io.LimitedReader{R: r.seg.src, N: r.seg.Length}
		r.seeked = true
	}

	return r.lr.Read(p)
}

func checkRange(offset, length, size int) {
	if offset < 0 || length < 0 || offset+length > size {
		panic(fmt.Sprintf("segment: span offset=%d length=%d out of range [0,%d]", offset, length, size))
	}
}
