package frame

import (
	"fmt"
	"io"

	"github.com/arloliu/rowseg/endian"
	"github.com/arloliu/rowseg/errs"
)

// source is the byte-source capability the decoder runs over.
//
// pos and end are absolute positions in the backing storage. readPrefix consumes
// endian.PrefixSize bytes and skip moves the cursor forward; the decoder checks
// the remaining length before calling either.
type source interface {
	pos() int64
	end() int64
	readPrefix() (uint32, error)
	skip(n int64) error
}

// bufferSource indexes directly into an in-memory buffer.
type bufferSource struct {
	data []byte
	cur  int
}

func (s *bufferSource) pos() int64 { return int64(s.cur) }
func (s *bufferSource) end() int64 { return int64(len(s.data)) }

func (s *bufferSource) readPrefix() (uint32, error) {
	n := endian.DecodePrefix(s.data[s.cur:])
	s.cur += endian.PrefixSize

	return n, nil
}

func (s *bufferSource) skip(n int64) error {
	s.cur += int(n)
	return nil
}

// streamSource reads sequentially from a seekable stream; the cursor is the
// stream position.
type streamSource struct {
	r       io.ReadSeeker
	cur     int64
	size    int64
	scratch [endian.PrefixSize]byte
}

// sizer is implemented by bytes.Reader, strings.Reader and io.SectionReader.
type sizer interface {
	Size() int64
}

func newStreamSource(r io.ReadSeeker) (*streamSource, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("stream position: %w", err)
	}

	src := &streamSource{r: r, cur: start}
	if sz, ok := r.(sizer); ok {
		src.size = sz.Size()
		return src, nil
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("stream size: %w", err)
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("stream restore position %d: %w", start, err)
	}
	src.size = size

	return src, nil
}

func (s *streamSource) pos() int64 { return s.cur }
func (s *streamSource) end() int64 { return s.size }

func (s *streamSource) readPrefix() (uint32, error) {
	if _, err := io.ReadFull(s.r, s.scratch[:]); err != nil {
		return 0, fmt.Errorf("%w: read length prefix at offset %d: %w", errs.ErrMalformedFraming, s.cur, err)
	}
	s.cur += endian.PrefixSize

	return endian.DecodePrefix(s.scratch[:]), nil
}

func (s *streamSource) skip(n int64) error {
	if n == 0 {
		return nil
	}

	pos, err := s.r.Seek(n, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("skip %d bytes at offset %d: %w", n, s.cur, err)
	}
	s.cur = pos

	return nil
}
