package table

import (
	"context"
	"fmt"

	"github.com/arloliu/rowseg/errs"
	"github.com/arloliu/rowseg/segment"
)

// Desc describes the table being built.
type Desc struct {
	// Name is the table name.
	Name string
	// ID is the xxHash64 of Name.
	ID uint64
	// RowType is the caller's row type descriptor, passed through untouched.
	RowType any
}

// RowBuilder turns row segments into a typed table. It is implemented outside
// this module.
//
// Segments are only valid until the Build call returns.
type RowBuilder interface {
	BuildText(ctx context.Context, desc Desc, rows []segment.Text) error
	BuildBytes(ctx context.Context, desc Desc, rows []segment.Bytes) error
	BuildStream(ctx context.Context, desc Desc, rows []segment.Stream) error
}

// BuilderFuncs adapts plain functions to RowBuilder. A nil function makes
// the matching mode unsupported.
type BuilderFuncs struct {
	Text   func(ctx context.Context, desc Desc, rows []segment.Text) error
	Bytes  func(ctx context.Context, desc Desc, rows []segment.Bytes) error
	Stream func(ctx context.Context, desc Desc, rows []segment.Stream) error
}

var _ RowBuilder = BuilderFuncs{}

func (b BuilderFuncs) BuildText(ctx context.Context, desc Desc, rows []segment.Text) error {
	if b.Text == nil {
		return fmt.Errorf("%w: no text builder for table %q", errs.ErrUnsupportedRepresentation, desc.Name)
	}

	return b.Text(ctx, desc, rows)
}

func (b BuilderFuncs) BuildBytes(ctx context.Context, desc Desc, rows []segment.Bytes) error {
	if b.Bytes == nil {
		return fmt.Errorf("%w: no bytes builder for table %q", errs.ErrUnsupportedRepresentation, desc.Name)
	}

	return b.Bytes(ctx, desc, rows)
}

func (b BuilderFuncs) BuildStream(ctx context.Context, desc Desc, rows []segment.Stream) error {
	if b.Stream == nil {
		return fmt.Errorf("%w: no stream builder for table %q", errs.ErrUnsupportedRepresentation, desc.Name)
	}

	return b.Stream(ctx, desc, rows)
}

// Releaser gives a raw asset back to its resource manager once the table is
// built. It is implemented outside this module.
type Releaser interface {
	Release(handle any) error
}

// ReleaserFunc adapts a function to Releaser.
type ReleaserFunc func(handle any) error

// Release calls f(handle).
func (f ReleaserFunc) Release(handle any) error {
	return f(handle)
}
