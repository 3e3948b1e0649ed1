package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs. It suits archived table exports that are loaded rarely.
//
// The implementation is selected at build time: pure Go by default, cgo
// gozstd with the gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
