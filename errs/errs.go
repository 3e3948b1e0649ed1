// Package errs defines the sentinel errors returned by rowseg packages.
//
// Callers match them with errors.Is; the packages wrap them with positional
// context such as the byte offset where framing broke.
package errs

import "errors"

// Framing errors.
var (
	// ErrMalformedFraming is returned when a length-prefixed payload ends in the middle
	// of a length prefix, or when a decoded row length runs past the end of the payload.
	ErrMalformedFraming = errors.New("malformed row framing")

	// ErrRowTooLarge is returned by the frame encoder when a row does not fit in a
	// 32-bit length prefix.
	ErrRowTooLarge = errors.New("row exceeds maximum framed length")
)

// Loader and configuration errors.
var (
	// ErrUnsupportedRepresentation is returned when a payload or load mode is not
	// one of text, bytes or stream, or when the payload does not match the mode.
	ErrUnsupportedRepresentation = errors.New("unsupported payload representation")

	// ErrUnsupportedCompression is returned for an unknown compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression type")

	// ErrNilPayload is returned when a load request carries no payload data source.
	ErrNilPayload = errors.New("nil payload")

	// ErrNilBuilder is returned when a loader is created without a row builder.
	ErrNilBuilder = errors.New("nil row builder")

	// ErrInvalidTableName is returned for an empty table name.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrTableAlreadyLoaded is returned when a table name is registered twice.
	ErrTableAlreadyLoaded = errors.New("table already loaded")

	// ErrHashCollision is returned when two distinct table names share an ID.
	ErrHashCollision = errors.New("table id hash collision")

	// ErrInvalidConcurrency is returned for a non-positive batch concurrency.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
)
