// Command rowseg prints the row segments of data-table exports.
//
// Usage:
//
//	rowseg [flags] file...
//
// Each row is printed as "offset length", optionally followed by its content.
// Stream files are opened and closed by the command; text and bytes files are
// read fully into memory first.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"

	"github.com/arloliu/rowseg/config"
	"github.com/arloliu/rowseg/format"
	"github.com/arloliu/rowseg/segment"
	"github.com/arloliu/rowseg/table"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	config       string
	mode         string
	compression  string
	keepComments bool
	logLevel     string
	logFormat    string
	concurrency  int
	content      bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, *config.Config, []string, error) {
	var f flags

	fs := flag.NewFlagSet("rowseg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "YAML config file")
	fs.StringVar(&f.mode, "mode", "", "payload mode: text, bytes or stream (default text)")
	fs.StringVar(&f.compression, "compression", "", "payload compression: none, zstd, s2 or lz4")
	fs.BoolVar(&f.keepComments, "keep-comments", false, "keep '#' comment rows of text payloads")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	fs.IntVar(&f.concurrency, "concurrency", 0, "files segmented concurrently")
	fs.BoolVar(&f.content, "content", false, "print row content after offset and length")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: rowseg [flags] file...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, nil, nil, errors.New("no input files")
	}

	load := config.FromEnv
	if f.config != "" {
		load = func() (*config.Config, error) { return config.Load(f.config) }
	}
	cfg, err := load()
	if err != nil {
		return nil, nil, nil, err
	}

	// explicit flags win over the file and the environment
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "mode":
			cfg.Mode = f.mode
		case "compression":
			cfg.Compression = f.compression
		case "keep-comments":
			cfg.KeepComments = f.keepComments
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "log-format":
			cfg.LogFormat = f.logFormat
		case "concurrency":
			cfg.Concurrency = f.concurrency
		}
	})
	if cfg.Mode == "" {
		cfg.Mode = "text"
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	return &f, cfg, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, cfg, files, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "rowseg:", err)

		return 2
	}

	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, "rowseg:", err)
		return 2
	}

	mode, err := format.ParsePayloadType(cfg.Mode)
	if err != nil {
		fmt.Fprintln(stderr, "rowseg:", err)
		return 2
	}

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintln(stderr, "rowseg:", err)
		return 2
	}

	out := newPrinter(f.content)
	opts = append(opts,
		table.WithLogger(logger),
		table.WithReleaser(table.ReleaserFunc(closeFile)),
	)

	loader, err := table.NewLoader(out, opts...)
	if err != nil {
		fmt.Fprintln(stderr, "rowseg:", err)
		return 2
	}

	reqs := make([]table.Request, 0, len(files))
	for _, name := range files {
		payload, err := openPayload(name, mode)
		if err != nil {
			fmt.Fprintln(stderr, "rowseg:", err)
			releaseAll(reqs)

			return 1
		}
		reqs = append(reqs, table.Request{Table: name, Payload: payload})
	}

	_, loadErr := loader.LoadAll(ctx, reqs)

	for _, name := range files {
		if lines, ok := out.output(name); ok {
			if len(files) > 1 {
				fmt.Fprintf(stdout, "==> %s <==\n", name)
			}
			io.WriteString(stdout, lines) //nolint:errcheck
		}
	}

	if loadErr != nil {
		fmt.Fprintln(stderr, "rowseg:", loadErr)
		return 1
	}

	return 0
}

func openPayload(name string, mode format.PayloadType) (table.Payload, error) {
	if mode == format.PayloadStream {
		fh, err := os.Open(name)
		if err != nil {
			return table.Payload{}, err
		}

		return table.StreamPayload(fh).WithHandle(fh), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return table.Payload{}, err
	}

	return table.BytesPayload(data), nil
}

func closeFile(handle any) error {
	if c, ok := handle.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

func releaseAll(reqs []table.Request) {
	for _, req := range reqs {
		closeFile(req.Payload.Handle()) //nolint:errcheck
	}
}

// printer formats the rows of each table; it is the command's RowBuilder.
type printer struct {
	content bool

	mu     sync.Mutex
	tables map[string]string
}

func newPrinter(content bool) *printer {
	return &printer{content: content, tables: make(map[string]string)}
}

func (p *printer) output(name string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.tables[name]

	return s, ok
}

func (p *printer) store(name string, sb *strings.Builder) {
	p.mu.Lock()
	p.tables[name] = sb.String()
	p.mu.Unlock()
}

func (p *printer) line(sb *strings.Builder, span segment.Span, content string) {
	sb.WriteString(strconv.FormatInt(span.Offset, 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatInt(span.Length, 10))
	if p.content {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(content))
	}
	sb.WriteByte('\n')
}

func (p *printer) BuildText(_ context.Context, desc table.Desc, rows []segment.Text) error {
	var sb strings.Builder
	for _, row := range rows {
		p.line(&sb, row.Span, row.String())
	}
	p.store(desc.Name, &sb)

	return nil
}

func (p *printer) BuildBytes(_ context.Context, desc table.Desc, rows []segment.Bytes) error {
	var sb strings.Builder
	for _, row := range rows {
		p.line(&sb, row.Span, string(row.Bytes()))
	}
	p.store(desc.Name, &sb)

	return nil
}

func (p *printer) BuildStream(_ context.Context, desc table.Desc, rows []segment.Stream) error {
	var sb strings.Builder
	for _, row := range rows {
		var content string
		if p.content {
			data, err := row.ReadAll()
			if err != nil {
				return err
			}
			content = string(data)
		}
		p.line(&sb, row.Span, content)
	}
	p.store(desc.Name, &sb)

	return nil
}
