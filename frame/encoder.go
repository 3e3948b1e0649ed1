package frame

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/rowseg/endian"
	"github.com/arloliu/rowseg/errs"
	"github.com/arloliu/rowseg/internal/pool"
)

// MaxRowLength is the largest row a 32-bit length prefix can describe.
const MaxRowLength = math.MaxUint32

// Encoder writes rows in the length-prefixed wire format.
//
// Each row is encoded as:
//   - 4 bytes: row length as uint32, little-endian
//   - N bytes: row data
//
// Note: The Encoder is NOT thread-safe.
type Encoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewEncoder creates an encoder backed by a pooled buffer.
//
// Call Reset (or Finish) when done to return the buffer to the pool.
func NewEncoder() *Encoder {
	return &Encoder{buf: pool.GetFrameBuffer()}
}

// Write appends one row.
//
// Returns:
//   - error: errs.ErrRowTooLarge if the row exceeds MaxRowLength
func (e *Encoder) Write(row []byte) error {
	if err := checkRowLength(len(row)); err != nil {
		return err
	}

	e.buf.AppendFrame(row)
	e.count++

	return nil
}

// WriteString appends one row given as a string.
func (e *Encoder) WriteString(row string) error {
	if err := checkRowLength(len(row)); err != nil {
		return err
	}

	e.buf.AppendFrameString(row)
	e.count++

	return nil
}

// WriteSlice appends rows with a single buffer growth.
//
// All rows are validated first; on error nothing is written.
func (e *Encoder) WriteSlice(rows [][]byte) error {
	total := 0
	for _, row := range rows {
		if err := checkRowLength(len(row)); err != nil {
			return err
		}
		total += endian.PrefixSize + len(row)
	}

	e.buf.Grow(total)
	for _, row := range rows {
		e.buf.AppendFrame(row)
		e.count++
	}

	return nil
}

// Bytes returns the encoded payload.
//
// The returned slice shares the encoder's buffer and is invalid after Reset.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// WriteTo writes the encoded payload to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	return e.buf.WriteTo(w)
}

// Len returns the number of rows written.
func (e *Encoder) Len() int {
	return e.count
}

// Size returns the encoded payload size in bytes.
func (e *Encoder) Size() int {
	return e.buf.Len()
}

// Finish returns a copy of the encoded payload and releases the encoder's buffer.
//
// The encoder must not be used after Finish.
func (e *Encoder) Finish() []byte {
	out := make([]byte, e.buf.Len())
	copy(out, e.buf.Bytes())
	e.Reset()

	return out
}

// Reset returns the buffer to the pool.
//
// After calling Reset, the encoder should not be used again.
func (e *Encoder) Reset() {
	if e.buf != nil {
		pool.PutFrameBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// AppendRow appends one framed row to dst and returns the extended slice.
func AppendRow(dst, row []byte) ([]byte, error) {
	if err := checkRowLength(len(row)); err != nil {
		return dst, err
	}

	dst = endian.AppendPrefix(dst, uint32(len(row))) //nolint:gosec

	return append(dst, row...), nil
}

// Encode frames rows into a new payload.
func Encode(rows ...[]byte) ([]byte, error) {
	enc := NewEncoder()
	defer enc.Reset()

	if err := enc.WriteSlice(rows); err != nil {
		return nil, err
	}

	out := make([]byte, enc.Size())
	copy(out, enc.Bytes())

	return out, nil
}

func checkRowLength(n int) error {
	if uint64(n) > MaxRowLength {
		return fmt.Errorf("%w: %d bytes, maximum %d", errs.ErrRowTooLarge, n, uint64(MaxRowLength))
	}

	return nil
}
