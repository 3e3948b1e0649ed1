package frame

import (
	"bytes"
	"testing"
)

func benchPayload(b *testing.B, rows int) []byte {
	b.Helper()
	enc := NewEncoder()
	defer enc.Reset()
	row := bytes.Repeat([]byte{'x'}, 48)
	for range rows {
		if err := enc.Write(row); err != nil {
			b.Fatal(err)
		}
	}

	return bytes.Clone(enc.Bytes())
}

func BenchmarkSplitBytes(b *testing.B) {
	payload := benchPayload(b, 10000)
	b.SetBytes(int64(len(payload)))
	for b.Loop() {
		if _, err := SplitBytes(payload); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSplitStream(b *testing.B) {
	payload := benchPayload(b, 10000)
	b.SetBytes(int64(len(payload)))
	for b.Loop() {
		if _, err := SplitStream(bytes.NewReader(payload)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncoder_Write(b *testing.B) {
	row := bytes.Repeat([]byte{'x'}, 48)
	for b.Loop() {
		enc := NewEncoder()
		for range 1000 {
			_ = enc.Write(row)
		}
		enc.Reset()
	}
}
