package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/rowseg/errs"
)

type (
	PayloadType     uint8
	CompressionType uint8
)

const (
	PayloadText   PayloadType = 0x1 // PayloadText is newline-delimited text.
	PayloadBytes  PayloadType = 0x2 // PayloadBytes is a length-prefixed in-memory byte buffer.
	PayloadStream PayloadType = 0x3 // PayloadStream is a length-prefixed seekable byte stream.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (p PayloadType) String() string {
	switch p {
	case PayloadText:
		return "Text"
	case PayloadBytes:
		return "Bytes"
	case PayloadStream:
		return "Stream"
	default:
		return "Unknown"
	}
}

// IsBinary reports whether the payload type uses length-prefixed framing.
func (p PayloadType) IsBinary() bool {
	return p == PayloadBytes || p == PayloadStream
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParsePayloadType parses a case-insensitive payload type name ("text", "bytes", "stream").
func ParsePayloadType(s string) (PayloadType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return PayloadText, nil
	case "bytes", "binary":
		return PayloadBytes, nil
	case "stream":
		return PayloadStream, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedRepresentation, s)
	}
}

// ParseCompressionType parses a case-insensitive compression name.
// An empty string means CompressionNone.
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, s)
	}
}
