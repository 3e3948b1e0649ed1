// Package table connects the row segmenters to an external table builder.
//
// A Loader takes a payload (text, byte buffer or seekable stream), optionally
// decompresses it, splits it into row segments, hands the segments to a
// RowBuilder together with the table descriptor, and finally releases the
// payload through a Releaser. Parsing rows into typed records is the builder's
// job; acquiring the payload is the caller's.
//
// # Modes
//
// The load mode selects the segmenter:
//   - format.PayloadText: line segmentation, '#' comment rows dropped
//   - format.PayloadBytes: length-prefixed framing over an in-memory buffer
//   - format.PayloadStream: length-prefixed framing over a seekable stream
//
// Without WithMode the payload's own type is used. A text-mode loader also
// accepts byte payloads (decoded as UTF-8 text) and a stream-mode loader accepts
// byte payloads (read through a bytes.Reader). Any other combination fails with
// errs.ErrUnsupportedRepresentation.
//
// # Lifetime
//
// Segments point into the payload. The builder must finish with them before it
// returns, because the payload is released right after.
//
// # Usage
//
//	loader, err := table.NewLoader(builder,
//	    table.WithMode(format.PayloadBytes),
//	    table.WithCompression(format.CompressionZstd),
//	    table.WithReleaser(assets),
//	)
//	res, err := loader.Load(ctx, table.Request{
//	    Table:   "items",
//	    RowType: itemRowType,
//	    Payload: table.BytesPayload(data).WithHandle(assetHandle),
//	})
package table
