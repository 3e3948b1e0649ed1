package frame

import (
	"fmt"

	"github.com/arloliu/rowseg/endian"
	"github.com/arloliu/rowseg/errs"
	"github.com/arloliu/rowseg/segment"
)

// decode walks src record by record and calls emit with the span of each row's
// data. The cursor is already past the row when emit runs. Decoding stops early
// when emit returns false.
func decode(src source, emit func(segment.Span) bool) error {
	for src.pos() < src.end() {
		start := src.pos()
		if remaining := src.end() - start; remaining < endian.PrefixSize {
			return fmt.Errorf("%w: %d trailing bytes at offset %d, need %d for a length prefix",
				errs.ErrMalformedFraming, remaining, start, endian.PrefixSize)
		}

		n, err := src.readPrefix()
		if err != nil {
			return err
		}

		body := src.pos()
		length := int64(n)
		if remaining := src.end() - body; length > remaining {
			return fmt.Errorf("%w: row at offset %d declares %d bytes, only %d remain",
				errs.ErrMalformedFraming, start, length, remaining)
		}

		if err := src.skip(length); err != nil {
			return err
		}

		if !emit(segment.Span{Offset: body, Length: length}) {
			return nil
		}
	}

	return nil
}
