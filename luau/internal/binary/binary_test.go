package binary

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	lerrors "github.com/wippyai/luau-lift/errors"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(bytes.NewReader(data))

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.Position() != 3 {
		t.Errorf("final position: got %d, want 3", r.Position())
	}

	_, err := r.ReadByte()
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderReadBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(bytes.NewReader(data))

	got, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}
	if r.Position() != 3 {
		t.Errorf("position: got %d, want 3", r.Position())
	}

	_, err = r.ReadBytes(10)
	if err == nil {
		t.Error("expected error for reading past EOF")
	}
}

func TestReaderSkip(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Position() != 3 {
		t.Errorf("position: got %d, want 3", r.Position())
	}
	b, _ := r.ReadByte()
	if b != 4 {
		t.Errorf("byte after skip: got %d, want 4", b)
	}
	if err := r.Skip(5); err == nil {
		t.Error("expected error skipping past EOF")
	}
}

func TestReaderSkipFallback(t *testing.T) {
	r := NewReader(&customByteReader{data: []byte{1, 2, 3}})
	if err := r.Skip(2); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if r.Position() != 2 {
		t.Errorf("position: got %d, want 2", r.Position())
	}
	if err := r.Skip(2); err == nil {
		t.Error("expected error skipping past EOF")
	}
}

func TestReaderReadVarint(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xff, 0x01}, 255},
		{[]byte{0x80, 0x80, 0x01}, 16384},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0x80, 0x80, 0x80, 0x80, 0x04}, 1 << 30},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
		// Redundant continuation bytes are accepted.
		{[]byte{0x81, 0x80, 0x80, 0x00}, 1},
	}

	for _, tt := range tests {
		r := NewReader(bytes.NewReader(tt.encoded))
		got, err := r.ReadVarint()
		if err != nil {
			t.Errorf("ReadVarint(%v): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadVarint(%v): got %d, want %d", tt.encoded, got, tt.want)
		}
		if r.Position() != len(tt.encoded) {
			t.Errorf("ReadVarint(%v): consumed %d bytes", tt.encoded, r.Position())
		}
	}
}

func TestReaderReadVarintUnbounded(t *testing.T) {
	// Twelve continuation bytes run past 64 bits; the excess is dropped.
	data := append(bytes.Repeat([]byte{0x80}, 12), 0x01)
	r := NewReader(bytes.NewReader(data))
	got, err := r.ReadVarint()
	if err != nil {
		t.Fatalf("ReadVarint: %v", err)
	}
	if got != 0 {
		t.Errorf("ReadVarint: got %d, want 0", got)
	}
}

func TestReaderReadVarintTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x80}))
	if _, err := r.ReadVarint(); err == nil {
		t.Error("expected error for truncated varint")
	}
}

func TestReaderReadCount(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x02, 0xaa, 0xbb}))
	n, err := r.ReadCount()
	if err != nil {
		t.Fatalf("ReadCount: %v", err)
	}
	if n != 2 {
		t.Errorf("ReadCount: got %d, want 2", n)
	}

	r = NewReader(bytes.NewReader([]byte{0x05, 0xaa}))
	if _, err := r.ReadCount(); !errors.Is(err, ErrCountTooLarge) {
		t.Errorf("expected ErrCountTooLarge, got %v", err)
	}
}

func TestReaderReadIndexSaturates(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
	r := NewReader(bytes.NewReader(data))
	got, err := r.ReadIndex()
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if got != math.MaxInt32 {
		t.Errorf("ReadIndex: got %d, want %d", got, math.MaxInt32)
	}
}

func TestReaderReadU32LE(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))
	got, err := r.ReadU32LE()
	if err != nil {
		t.Fatalf("ReadU32LE: %v", err)
	}
	if got != 0x04030201 {
		t.Errorf("ReadU32LE: got 0x%08x, want 0x04030201", got)
	}
}

func TestReaderReadU32LETruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	if _, err := r.ReadU32LE(); err == nil {
		t.Error("expected error for truncated u32le")
	}
}

func TestReaderWrapError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	r.ReadByte()
	r.ReadByte()

	err := r.WrapError("string table", io.EOF)
	var le *lerrors.Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if le.Offset != 2 || !le.Positioned {
		t.Errorf("Offset: got %d, want 2", le.Offset)
	}
	if le.Section != "string table" {
		t.Errorf("Section: got %q", le.Section)
	}
	if le.Kind != lerrors.KindUnexpectedEOF {
		t.Errorf("Kind: got %v", le.Kind)
	}
	if !errors.Is(err, io.EOF) {
		t.Error("wrapped error should unwrap to io.EOF")
	}

	// Already structured errors pass through untouched.
	tag := lerrors.InvalidTag(1, 99)
	if got := r.WrapError("constant", tag); got != error(tag) {
		t.Errorf("WrapError rewrapped a structured error: %v", got)
	}
}

func TestWriterWriteVarint(t *testing.T) {
	tests := []struct {
		want  []byte
		value uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0x80, 0x80, 0x01}, 16384},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WriteVarint(tt.value)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteVarint(%d): got %v, want %v", tt.value, w.Bytes(), tt.want)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 127, 128, 16384, 1 << 30, math.MaxUint64} {
		w := NewWriter()
		w.WriteVarint(v)
		r := NewReader(bytes.NewReader(w.Bytes()))
		got, err := r.ReadVarint()
		if err != nil {
			t.Fatalf("ReadVarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestWriterMixedRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Byte(0x02)
	w.WriteString("hello")
	w.WriteU32LE(0xDEADBEEF)
	w.WriteF64LE(3.5)

	r := NewReader(bytes.NewReader(w.Bytes()))
	if b, _ := r.ReadByte(); b != 0x02 {
		t.Errorf("byte: got %d", b)
	}
	n, err := r.ReadCount()
	if err != nil || n != 5 {
		t.Fatalf("string length: %d, %v", n, err)
	}
	s, _ := r.ReadBytes(n)
	if string(s) != "hello" {
		t.Errorf("string: got %q", s)
	}
	if u, _ := r.ReadU32LE(); u != 0xDEADBEEF {
		t.Errorf("u32: got 0x%08x", u)
	}
	if f, _ := r.ReadF64LE(); f != 3.5 {
		t.Errorf("f64: got %v", f)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining: got %d", r.Remaining())
	}
}

// customByteReader is a ByteReader that is NOT a *bytes.Reader
type customByteReader struct {
	data []byte
	pos  int
}

func (c *customByteReader) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}
