package rowseg

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rowseg/config"
	"github.com/arloliu/rowseg/errs"
	"github.com/arloliu/rowseg/frame"
	"github.com/arloliu/rowseg/segment"
	"github.com/arloliu/rowseg/table"
)

func textRows(segs []segment.Text) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.String()
	}

	return out
}

func TestSegmentText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"newline", "a\nb\n", []string{"a", "b"}},
		{"mixed terminators", "a\r\nb\rc", []string{"a", "b", "c"}},
		{"blank lines", "\n\na\n", []string{"a"}},
		{"no terminator", "lastline", []string{"lastline"}},
		{"comments kept", "#comment\nrow1\n", []string{"#comment", "row1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := SegmentText(tt.input)
			require.NotNil(t, segs)
			require.Equal(t, tt.want, textRows(segs))
		})
	}
}

func TestSegmentRows(t *testing.T) {
	require.Equal(t, []string{"row1"}, textRows(SegmentRows("#comment\nrow1\n")))
	require.Equal(t, []string{" #indented"}, textRows(SegmentRows(" #indented\n#x")))

	segs := SegmentText("#c\nr")
	require.True(t, IsComment(segs[0]))
	require.False(t, IsComment(segs[1]))
}

func TestSegmentText_OrderedNonOverlapping(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []byte("ab#\r\n")

	for range 200 {
		buf := make([]byte, rng.IntN(64))
		for i := range buf {
			buf[i] = alphabet[rng.IntN(len(alphabet))]
		}
		input := string(buf)

		var prevEnd int64
		for _, seg := range SegmentText(input) {
			require.GreaterOrEqual(t, seg.Offset, prevEnd, "input %q", input)
			require.Positive(t, seg.Length)
			require.LessOrEqual(t, seg.End(), int64(len(input)))
			require.NotContains(t, seg.String(), "\n")
			require.NotContains(t, seg.String(), "\r")
			prevEnd = seg.End()
		}

		// every non-terminator byte is covered by exactly one segment
		var covered int
		for _, seg := range SegmentText(input) {
			covered += int(seg.Length)
		}
		require.Equal(t, len(strings.NewReplacer("\r", "", "\n", "").Replace(input)), covered)
	}
}

func TestSegmentBytes(t *testing.T) {
	wire := []byte{2, 0, 0, 0, 'a', 'b', 3, 0, 0, 0, 'x', 'y', 'z'}

	encoded, err := frame.Encode([]byte("ab"), []byte("xyz"))
	require.NoError(t, err)
	require.Equal(t, wire, encoded)

	rows, err := SegmentBytes(wire)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []byte("ab"), rows[0].Bytes())
	require.Equal(t, []byte("xyz"), rows[1].Bytes())

	rows, err = SegmentBytes(nil)
	require.NoError(t, err)
	require.Empty(t, rows)

	_, err = SegmentBytes(append(wire, 7, 7))
	require.ErrorIs(t, err, errs.ErrMalformedFraming)

	_, err = SegmentBytes([]byte{9, 0, 0, 0, 'a'})
	require.ErrorIs(t, err, errs.ErrMalformedFraming)
}

func TestSegmentStream_MatchesBytes(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	for range 50 {
		rows := make([][]byte, rng.IntN(20))
		for i := range rows {
			rows[i] = bytes.Repeat([]byte{byte(i)}, rng.IntN(40))
		}
		data, err := frame.Encode(rows...)
		require.NoError(t, err)

		fromBytes, err := SegmentBytes(data)
		require.NoError(t, err)
		fromStream, err := SegmentStream(bytes.NewReader(data))
		require.NoError(t, err)
		require.Len(t, fromStream, len(fromBytes))

		var total int64
		for i := range fromBytes {
			require.Equal(t, fromBytes[i].Span, fromStream[i].Span)
			require.Equal(t, rows[i], fromBytes[i].Bytes())

			got, err := fromStream[i].ReadAll()
			require.NoError(t, err)
			require.Equal(t, len(rows[i]), len(got))

			total += 4 + fromBytes[i].Length
		}
		require.Equal(t, int64(len(data)), total)
	}
}

func TestSegmentStream_Malformed(t *testing.T) {
	_, err := SegmentStream(bytes.NewReader([]byte{1, 0, 0, 0, 'a', 0, 0}))
	require.ErrorIs(t, err, errs.ErrMalformedFraming)
}

func TestNewLoader(t *testing.T) {
	_, err := NewLoader(nil)
	require.ErrorIs(t, err, errs.ErrNilBuilder)

	var got []string
	builder := table.BuilderFuncs{
		Text: func(_ context.Context, _ table.Desc, rows []segment.Text) error {
			got = append(got, textRows(rows)...)
			return nil
		},
	}

	l, err := NewLoader(builder)
	require.NoError(t, err)

	res, err := l.Load(context.Background(), table.Request{Table: "t", Payload: table.TextPayload("#h\na\nb")})
	require.NoError(t, err)
	require.Equal(t, 2, res.Rows)
	require.Equal(t, []string{"a", "b"}, got)
}

func TestNewLoaderFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("mode: bytes\n"))
	require.NoError(t, err)

	l, err := NewLoaderFromConfig(table.BuilderFuncs{}, cfg)
	require.NoError(t, err)

	_, err = l.Load(context.Background(), table.Request{Table: "t", Payload: table.TextPayload("a")})
	require.ErrorIs(t, err, errs.ErrUnsupportedRepresentation)

	_, err = NewLoaderFromConfig(table.BuilderFuncs{}, nil, table.WithConcurrency(-1))
	require.ErrorIs(t, err, errs.ErrInvalidConcurrency)

	_, err = NewLoaderFromConfig(table.BuilderFuncs{}, &config.Config{Compression: "brotli"})
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestNewLoaderFromConfig_Env(t *testing.T) {
	t.Setenv("ROWSEG_MODE", "stream")

	l, err := NewLoaderFromConfig(table.BuilderFuncs{}, nil)
	require.NoError(t, err)

	_, err = l.Load(context.Background(), table.Request{Table: "t", Payload: table.TextPayload("a")})
	require.ErrorIs(t, err, errs.ErrUnsupportedRepresentation)

	t.Setenv("ROWSEG_CONCURRENCY", "x")
	_, err = NewLoaderFromConfig(table.BuilderFuncs{}, nil)
	require.ErrorContains(t, err, "ROWSEG_CONCURRENCY")
}
