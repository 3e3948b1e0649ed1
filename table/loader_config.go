package table

import (
	"fmt"

	"github.com/arloliu/rowseg/compress"
	"github.com/arloliu/rowseg/errs"
	"github.com/arloliu/rowseg/format"
	"github.com/arloliu/rowseg/internal/options"
	"github.com/arloliu/rowseg/logging"
	"github.com/arloliu/rowseg/metrics"
)

// DefaultConcurrency is the number of payloads LoadAll segments at once.
const DefaultConcurrency = 4

// LoaderOption is a functional option for configuring a Loader.
type LoaderOption = options.Option[*Loader]

// WithMode fixes the load mode. Without it the payload's own type is used.
func WithMode(mode format.PayloadType) LoaderOption {
	return options.New(func(l *Loader) error {
		switch mode {
		case format.PayloadText, format.PayloadBytes, format.PayloadStream:
			l.mode = mode
			return nil
		default:
			return fmt.Errorf("%w: load mode %s", errs.ErrUnsupportedRepresentation, mode)
		}
	})
}

// WithCompression sets the codec binary payloads are compressed with.
// Default is format.CompressionNone.
func WithCompression(comp format.CompressionType) LoaderOption {
	return options.New(func(l *Loader) error {
		codec, err := compress.CreateCodec(comp, "payload")
		if err != nil {
			return err
		}
		l.compression = comp
		l.codec = codec

		return nil
	})
}

// WithKeepComments hands '#' comment rows of text payloads to the builder
// instead of dropping them. Default is false.
func WithKeepComments(keep bool) LoaderOption {
	return options.NoError(func(l *Loader) {
		l.keepComments = keep
	})
}

// WithReleaser sets the resource manager payload handles are released to.
func WithReleaser(r Releaser) LoaderOption {
	return options.NoError(func(l *Loader) {
		l.releaser = r
	})
}

// WithLogger sets the logger. Default discards all output.
func WithLogger(logger *logging.Logger) LoaderOption {
	return options.NoError(func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	})
}

// WithMetrics sets the metrics collector. Default records nothing.
func WithMetrics(c *metrics.Collector) LoaderOption {
	return options.NoError(func(l *Loader) {
		l.metrics = c
	})
}

// WithRegistry shares a table registry between loaders.
func WithRegistry(r *Registry) LoaderOption {
	return options.NoError(func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	})
}

// WithConcurrency sets how many payloads LoadAll processes at once.
func WithConcurrency(n int) LoaderOption {
	return options.New(func(l *Loader) error {
		if n <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidConcurrency, n)
		}
		l.concurrency = n

		return nil
	})
}
