package table

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/rowseg/compress"
	"github.com/arloliu/rowseg/endian"
	"github.com/arloliu/rowseg/errs"
	"github.com/arloliu/rowseg/format"
	"github.com/arloliu/rowseg/frame"
	"github.com/arloliu/rowseg/internal/options"
	"github.com/arloliu/rowseg/logging"
	"github.com/arloliu/rowseg/metrics"
	"github.com/arloliu/rowseg/segment"
	"github.com/arloliu/rowseg/textseg"
)

// Request is one table load.
type Request struct {
	// Table is the table name; it must be unique within the registry.
	Table string
	// RowType is passed to the builder untouched.
	RowType any
	// Payload is the raw export.
	Payload Payload
}

// Result describes a completed load.
type Result struct {
	LoadID string
	Table  string
	ID     uint64
	Mode   format.PayloadType
	// Rows is the number of segments handed to the builder.
	Rows int
	// Bytes is the segmented payload size after decompression.
	Bytes int64
}

// Loader segments payloads and feeds them to a RowBuilder.
//
// A Loader is safe for concurrent use as long as concurrent requests carry
// distinct payloads; one stream must never be shared between requests.
type Loader struct {
	builder      RowBuilder
	mode         format.PayloadType
	compression  format.CompressionType
	codec        compress.Codec
	keepComments bool
	releaser     Releaser
	logger       *logging.Logger
	metrics      *metrics.Collector
	registry     *Registry
	concurrency  int
}

// NewLoader creates a loader that hands rows to builder.
//
// Returns:
//   - *Loader: Configured loader
//   - error: errs.ErrNilBuilder, or an option validation error
func NewLoader(builder RowBuilder, opts ...LoaderOption) (*Loader, error) {
	if builder == nil {
		return nil, errs.ErrNilBuilder
	}

	l := &Loader{
		builder:     builder,
		compression: format.CompressionNone,
		codec:       compress.NewNoOpCompressor(),
		logger:      logging.Noop(),
		registry:    NewRegistry(),
		concurrency: DefaultConcurrency,
	}

	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	return l, nil
}

// Registry returns the registry loaded tables are recorded in.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Unload forgets a loaded table so its name can be loaded again.
func (l *Loader) Unload(name string) bool {
	return l.registry.Unregister(name)
}

// Load segments one payload, builds the table and releases the payload.
//
// The payload handle, when set, is released exactly once, whether the load
// succeeded or not. A release error is joined with the load error.
func (l *Loader) Load(ctx context.Context, req Request) (Result, error) {
	res := Result{LoadID: uuid.NewString(), Table: req.Table}
	log := l.logger.WithLoad(res.LoadID, req.Table)

	mode, err := l.resolveMode(req.Payload)
	res.Mode = mode
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		err = l.load(ctx, req, &res)
	}

	if handle := req.Payload.Handle(); handle != nil && l.releaser != nil {
		rerr := l.releaser.Release(handle)
		log.LogRelease(ctx, rerr)
		if rerr != nil {
			err = errors.Join(err, fmt.Errorf("release payload of table %q: %w", req.Table, rerr))
		}
	}

	log.LogLoad(ctx, mode.String(), res.Rows, res.Bytes, err)
	if err != nil {
		l.metrics.ObserveFailure(mode.String(), errors.Is(err, errs.ErrMalformedFraming))
		return res, err
	}
	l.metrics.ObserveLoad(mode.String(), res.Rows, res.Bytes)

	return res, nil
}

// LoadAll loads requests concurrently, at most WithConcurrency at a time.
//
// Results are returned in request order. The first failure cancels the
// requests that have not started; their payloads are still released.
func (l *Loader) LoadAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	loaded := make([]bool, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := l.Load(gctx, req)
			results[i] = res
			loaded[i] = err == nil

			return err
		})
	}

	err := g.Wait()
	l.logger.LogBatch(ctx, len(reqs), countTrue(loaded), err)

	return results, err
}

func (l *Loader) resolveMode(p Payload) (format.PayloadType, error) {
	kind := p.Type()
	switch kind {
	case format.PayloadText, format.PayloadBytes:
	case format.PayloadStream:
		if p.stream == nil {
			return kind, fmt.Errorf("%w: stream payload without reader", errs.ErrNilPayload)
		}
	default:
		return kind, errs.ErrNilPayload
	}

	if l.mode == 0 || l.mode == kind {
		return kind, nil
	}

	// byte buffers can be read as text or through a stream
	if kind == format.PayloadBytes && (l.mode == format.PayloadText || l.mode == format.PayloadStream) {
		return l.mode, nil
	}

	return l.mode, fmt.Errorf("%w: %s payload in %s mode", errs.ErrUnsupportedRepresentation, kind, l.mode)
}

func (l *Loader) load(ctx context.Context, req Request, res *Result) error {
	id, err := l.registry.Register(req.Table)
	if err != nil {
		return err
	}

	desc := Desc{Name: req.Table, ID: id, RowType: req.RowType}
	if err := l.segmentAndBuild(ctx, desc, req.Payload, res); err != nil {
		l.registry.Unregister(req.Table)
		res.Rows = 0

		return err
	}
	res.ID = id

	return nil
}

func (l *Loader) segmentAndBuild(ctx context.Context, desc Desc, p Payload, res *Result) error {
	switch res.Mode {
	case format.PayloadText:
		text, err := l.textOf(p)
		if err != nil {
			return err
		}

		rows := textseg.Split(text)
		if !l.keepComments {
			rows = textseg.DropComments(rows)
		}
		res.Rows, res.Bytes = len(rows), int64(len(text))

		return l.builder.BuildText(ctx, desc, rows)

	case format.PayloadBytes:
		data, err := l.decompress(p.data)
		if err != nil {
			return err
		}

		rows, err := frame.SplitBytes(data)
		if err != nil {
			return fmt.Errorf("table %q: %w", desc.Name, err)
		}
		res.Rows, res.Bytes = len(rows), int64(len(data))

		return l.builder.BuildBytes(ctx, desc, rows)

	case format.PayloadStream:
		r, err := l.streamOf(p)
		if err != nil {
			return err
		}

		rows, err := frame.SplitStream(r)
		if err != nil {
			return fmt.Errorf("table %q: %w", desc.Name, err)
		}
		res.Rows, res.Bytes = len(rows), framedSize(rows)

		return l.builder.BuildStream(ctx, desc, rows)

	default:
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedRepresentation, res.Mode)
	}
}

func (l *Loader) textOf(p Payload) (string, error) {
	if l.compression != format.CompressionNone {
		if !p.Type().IsBinary() {
			return "", fmt.Errorf("%w: compressed text must be a byte payload", errs.ErrUnsupportedRepresentation)
		}
		data, err := l.decompress(p.data)
		if err != nil {
			return "", err
		}

		return string(data), nil
	}

	if p.Type() == format.PayloadBytes {
		return string(p.data), nil
	}

	return p.text, nil
}

func (l *Loader) streamOf(p Payload) (io.ReadSeeker, error) {
	if p.Type() == format.PayloadBytes {
		data, err := l.decompress(p.data)
		if err != nil {
			return nil, err
		}

		return bytes.NewReader(data), nil
	}

	if l.compression == format.CompressionNone {
		return p.stream, nil
	}

	compressed, err := io.ReadAll(p.stream)
	if err != nil {
		return nil, fmt.Errorf("read compressed stream: %w", err)
	}
	data, err := l.decompress(compressed)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(data), nil
}

func (l *Loader) decompress(data []byte) ([]byte, error) {
	out, err := l.codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s payload: %w", l.compression, err)
	}

	return out, nil
}

func countTrue(flags []bool) int {
	n := 0
	for _, ok := range flags {
		if ok {
			n++
		}
	}

	return n
}

// framedSize is the payload length covered by rows: each row plus its prefix.
func framedSize(rows []segment.Stream) int64 {
	var n int64
	for _, row := range rows {
		n += endian.PrefixSize + row.Length
	}

	return n
}
