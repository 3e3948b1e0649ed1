package compress

import (
	"fmt"
	"math"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/rowseg/endian"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor uses the LZ4 block format.
//
// A compressed payload is [uint32 little-endian decoded size][lz4 block], so
// Decompress allocates the output once. Input that LZ4 does not shrink is
// stored raw after the header, so a block as long as the decoded size is raw.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a size-prefixed LZ4 block.
//
// Returns:
//   - []byte: Compressed payload (nil if input is empty)
//   - error: Input above 4 GiB, or a block compression error
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("lz4: payload of %d bytes exceeds the size header", len(data))
	}

	dst := make([]byte, endian.PrefixSize+lz4.CompressBlockBound(len(data)))
	endian.AppendPrefix(dst[:0], uint32(len(data))) //nolint:gosec // checked above

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[endian.PrefixSize:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		// stored raw: header followed by the input
		return append(dst[:endian.PrefixSize], data...), nil
	}

	return dst[:endian.PrefixSize+n], nil
}

// Decompress restores a payload produced by Compress.
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Truncated header, oversized or mismatched decoded size, or a block error
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < endian.PrefixSize {
		return nil, fmt.Errorf("lz4: %d bytes is shorter than the size header", len(data))
	}

	size := int64(endian.DecodePrefix(data))
	if size > maxDecodedSize {
		return nil, fmt.Errorf("lz4: decoded size %d exceeds limit %d", size, maxDecodedSize)
	}

	block := data[endian.PrefixSize:]
	out := make([]byte, size)
	if int64(len(block)) == size {
		copy(out, block)
		return out, nil
	}

	n, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if int64(n) != size {
		return nil, fmt.Errorf("lz4: decoded %d bytes, header declares %d", n, size)
	}

	return out, nil
}
