package segment

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	s := Span{Offset: 4, Length: 3}
	require.Equal(t, int64(7), s.End())
	require.False(t, s.IsZero())
	require.True(t, Span{}.IsZero())
	require.Equal(t, "[4,+3)", s.String())
}

func TestSpan_Overlaps(t *testing.T) {
	a := Span{Offset: 0, Length: 4}
	require.True(t, a.Overlaps(Span{Offset: 3, Length: 2}))
	require.False(t, a.Overlaps(Span{Offset: 4, Length: 2}))
	require.False(t, a.Overlaps(Span{Offset: 8, Length: 0}))
}

func TestText(t *testing.T) {
	src := "ab\ncd"
	seg := NewText(src, 3, 2)
	require.Equal(t, "cd", seg.String())
	require.Equal(t, byte('c'), seg.First())
	require.False(t, seg.IsZero())

	require.True(t, Text{}.IsZero())
	require.Equal(t, byte(0), Text{}.First())

	require.Panics(t, func() { NewText(src, 4, 2) })
	require.Panics(t, func() { NewText(src, -1, 1) })
}

func TestBytes(t *testing.T) {
	src := []byte{2, 0, 0, 0, 'a', 'b'}
	seg := NewBytes(src, 4, 2)
	require.Equal(t, []byte("ab"), seg.Bytes())
	require.Equal(t, 2, cap(seg.Bytes()), "capacity must be clipped to the row")
	require.False(t, seg.IsZero())
	require.True(t, Bytes{}.IsZero())

	// the view aliases the payload
	src[4] = 'z'
	require.Equal(t, []byte("zb"), seg.Bytes())

	require.Panics(t, func() { NewBytes(src, 5, 2) })
}

func TestStream_ReaderAt(t *testing.T) {
	r := bytes.NewReader([]byte("xxhelloyy"))
	seg := NewStream(r, 2, 5)

	data, err := seg.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos, "section reads must not move the stream cursor")
}

// seekOnly hides io.ReaderAt so the seeking path is exercised.
type seekOnly struct {
	io.ReadSeeker
}

func TestStream_Seeking(t *testing.T) {
	r := seekOnly{bytes.NewReader([]byte("xxhelloyy"))}
	seg := NewStream(r, 2, 5)

	data, err := seg.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	_, err = NewStream(r, 7, 5).ReadAll()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestStream_Zero(t *testing.T) {
	require.True(t, Stream{}.IsZero())
	_, err := Stream{}.ReadAll()
	require.Error(t, err)
	require.Panics(t, func() { NewStream(nil, -1, 0) })
}
