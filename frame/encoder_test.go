package frame

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/rowseg/errs"
	"github.com/stretchr/testify/require"
)

func TestEncoder_Write(t *testing.T) {
	enc := NewEncoder()
	defer enc.Reset()

	require.NoError(t, enc.Write([]byte("ab")))
	require.NoError(t, enc.WriteString("xyz"))
	require.Equal(t, 2, enc.Len())
	require.Equal(t, 13, enc.Size())
	require.Equal(t, []byte{2, 0, 0, 0, 'a', 'b', 3, 0, 0, 0, 'x', 'y', 'z'}, enc.Bytes())
}

func TestEncoder_WriteSlice(t *testing.T) {
	enc := NewEncoder()
	defer enc.Reset()

	rows := [][]byte{[]byte("hello"), []byte("world"), {}}
	require.NoError(t, enc.WriteSlice(rows))
	require.Equal(t, 3, enc.Len())
	require.Equal(t, (4+5)*2+4, enc.Size())

	segs, err := SplitBytes(enc.Bytes())
	require.NoError(t, err)
	require.Equal(t, []string{"hello", "world", ""}, rowsOf(t, segs))
}

func TestEncoder_LargeRow(t *testing.T) {
	enc := NewEncoder()
	defer enc.Reset()

	big := strings.Repeat("r", 70000)
	require.NoError(t, enc.WriteString(big))
	require.Equal(t, []byte{0x70, 0x11, 0x01, 0x00}, enc.Bytes()[:4])

	segs, err := SplitBytes(enc.Bytes())
	require.NoError(t, err)
	require.Len(t, segs, 1)
	require.Equal(t, big, string(segs[0].Bytes()))
}

func TestEncoder_WriteTo(t *testing.T) {
	enc := NewEncoder()
	defer enc.Reset()
	require.NoError(t, enc.WriteString("row"))

	var out bytes.Buffer
	n, err := enc.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	segs, err := SplitStream(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	require.Equal(t, int64(4), segs[0].Offset)
}

func TestEncoder_Finish(t *testing.T) {
	enc := NewEncoder()
	require.NoError(t, enc.WriteString("a"))

	out := enc.Finish()
	require.Equal(t, []byte{1, 0, 0, 0, 'a'}, out)
	require.Equal(t, 0, enc.Len())

	enc.Reset() // second reset is harmless
}

func TestCheckRowLength(t *testing.T) {
	require.NoError(t, checkRowLength(0))
	require.NoError(t, checkRowLength(1<<20))

	if uint64(^uint(0)) > MaxRowLength {
		tooLong := uint64(MaxRowLength) + 1
		err := checkRowLength(int(tooLong)) //nolint:gosec
		require.ErrorIs(t, err, errs.ErrRowTooLarge)
	}
}

func TestAppendRow(t *testing.T) {
	dst := []byte{9}
	dst, err := AppendRow(dst, []byte("ok"))
	require.NoError(t, err)
	require.Equal(t, []byte{9, 2, 0, 0, 0, 'o', 'k'}, dst)

	segs, err := SplitBytes(dst[1:])
	require.NoError(t, err)
	require.Equal(t, []string{"ok"}, rowsOf(t, segs))
}

func TestEncode_Empty(t *testing.T) {
	out, err := Encode()
	require.NoError(t, err)
	require.Empty(t, out)
}
