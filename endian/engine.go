// Package endian provides the byte order engine used by the frame codec.
//
// Row length prefixes are always little-endian on the wire. The engine combines
// binary.ByteOrder and binary.AppendByteOrder so the encoder can append prefixes
// without a scratch buffer and the decoder can read them in place.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// Engine values are immutable and stateless.
package endian

import "encoding/binary"

// PrefixSize is the size in bytes of a row length prefix.
const PrefixSize = 4

// Engine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire returns the engine for the row framing format (little-endian).
func Wire() Engine {
	return binary.LittleEndian
}

// DecodePrefix decodes a row length prefix from the first PrefixSize bytes of b.
//
// The value is b[0] | b[1]<<8 | b[2]<<16 | b[3]<<24. Panics if len(b) < PrefixSize,
// callers check the remaining length first.
func DecodePrefix(b []byte) uint32 {
	return Wire().Uint32(b[:PrefixSize])
}

// AppendPrefix appends the little-endian length prefix n to dst.
func AppendPrefix(dst []byte, n uint32) []byte {
	return Wire().AppendUint32(dst, n)
}
