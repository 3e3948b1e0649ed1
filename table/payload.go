package table

import (
	"io"

	"github.com/arloliu/rowseg/format"
)

// Payload is a raw table export in one of the three representations.
//
// The zero Payload is invalid.
type Payload struct {
	kind   format.PayloadType
	text   string
	data   []byte
	stream io.ReadSeeker
	handle any
}

// TextPayload wraps a newline-delimited text export.
func TextPayload(text string) Payload {
	return Payload{kind: format.PayloadText, text: text}
}

// BytesPayload wraps a length-prefixed export held in memory.
func BytesPayload(data []byte) Payload {
	return Payload{kind: format.PayloadBytes, data: data}
}

// StreamPayload wraps a length-prefixed export readable from r, positioned at
// the start of the export.
func StreamPayload(r io.ReadSeeker) Payload {
	return Payload{kind: format.PayloadStream, stream: r}
}

// WithHandle returns a copy of p carrying the asset handle to release after
// the load.
func (p Payload) WithHandle(handle any) Payload {
	p.handle = handle
	return p
}

// Type returns the payload representation.
func (p Payload) Type() format.PayloadType {
	return p.kind
}

// Handle returns the asset handle, or nil.
func (p Payload) Handle() any {
	return p.handle
}
