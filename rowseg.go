// Package rowseg splits raw data-table payloads into row segments.
//
// A payload is one of three representations:
//
//   - Text: rows separated by "\n", "\r" or "\r\n". Blank lines are skipped and
//     the last row needs no terminator. Rows starting with '#' are comments.
//   - Bytes: an in-memory buffer of [uint32 little-endian length][row bytes] frames.
//   - Stream: the same framing read from an io.ReadSeeker.
//
// Segments are views: they hold an offset and a length into the payload and
// never copy row contents. A segment is valid only while its payload is.
//
// # Basic Usage
//
// Segmenting text:
//
//	for _, row := range rowseg.SegmentRows("#id,name\n1,sword\n2,shield\n") {
//	    fmt.Println(row.String())
//	}
//
// Segmenting a framed buffer:
//
//	data, _ := frame.Encode([]byte("ab"), []byte("xyz"))
//	rows, err := rowseg.SegmentBytes(data)
//	if err != nil {
//	    // errors.Is(err, errs.ErrMalformedFraming)
//	}
//
// Loading tables into a builder, releasing each payload afterwards:
//
//	loader, _ := rowseg.NewLoader(builder, table.WithReleaser(assets))
//	res, err := loader.Load(ctx, table.Request{
//	    Table:   "items",
//	    Payload: table.StreamPayload(f).WithHandle(assetID),
//	})
//
// # Package Structure
//
// This package wraps textseg, frame and table for the common cases. Use those
// packages directly for lazy iteration, encoding and loader configuration.
package rowseg

import (
	"io"

	"github.com/arloliu/rowseg/config"
	"github.com/arloliu/rowseg/frame"
	"github.com/arloliu/rowseg/segment"
	"github.com/arloliu/rowseg/table"
	"github.com/arloliu/rowseg/textseg"
)

// SegmentText returns every non-blank line of text, comment lines included.
// The result is never nil.
func SegmentText(text string) []segment.Text {
	return textseg.Split(text)
}

// SegmentRows returns the non-blank, non-comment lines of text.
func SegmentRows(text string) []segment.Text {
	return textseg.Rows(text)
}

// IsComment reports whether a text row is a comment line.
func IsComment(row segment.Text) bool {
	return textseg.IsComment(row)
}

// SegmentBytes decodes the length-prefixed rows of buf.
//
// Returns errs.ErrMalformedFraming when buf ends inside a length prefix or a
// length runs past the end of buf.
func SegmentBytes(buf []byte) ([]segment.Bytes, error) {
	return frame.SplitBytes(buf)
}

// SegmentStream decodes the length-prefixed rows of r, starting at its
// current position. Segment offsets are absolute positions in r.
//
// Returns errs.ErrMalformedFraming under the same conditions as SegmentBytes.
func SegmentStream(r io.ReadSeeker) ([]segment.Stream, error) {
	return frame.SplitStream(r)
}

// NewLoader creates a table loader.
//
// Example:
//
//	loader, err := rowseg.NewLoader(builder,
//	    table.WithMode(format.PayloadStream),
//	    table.WithCompression(format.CompressionZstd),
//	)
func NewLoader(builder table.RowBuilder, opts ...table.LoaderOption) (*table.Loader, error) {
	return table.NewLoader(builder, opts...)
}

// NewLoaderFromConfig creates a table loader from file settings. A nil cfg
// means the defaults with ROWSEG_* environment overrides. extra options are
// applied after the configured ones.
func NewLoaderFromConfig(builder table.RowBuilder, cfg *config.Config, extra ...table.LoaderOption) (*table.Loader, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.FromEnv(); err != nil {
			return nil, err
		}
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return table.NewLoader(builder, append(opts, extra...)...)
}
