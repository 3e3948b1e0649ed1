// Package compress provides the codecs for compressed row payloads.
//
// Table exports are often shipped compressed. A loader configured with a
// compression type decompresses the whole payload first and then frames the
// result, so row segments always point into the decompressed buffer.
//
// Supported algorithms (format.CompressionType):
//   - None: payload is used as-is, no copy
//   - Zstd: github.com/klauspost/compress/zstd by default; the cgo binding
//     github.com/valyala/gozstd is used when building with the gozstd tag
//   - S2: github.com/klauspost/compress/s2 block format
//   - LZ4: github.com/pierrec/lz4/v4 block format behind a 4-byte decoded-size header
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(payload)
//
// All built-in codecs are safe for concurrent use.
package compress
