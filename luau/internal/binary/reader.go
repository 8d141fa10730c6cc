package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	lerrors "github.com/wippyai/luau-lift/errors"
)

// ErrCountTooLarge is returned when a list count cannot fit in the remaining input.
var ErrCountTooLarge = errors.New("varint: count exceeds remaining input")

// Reader wraps an io.ByteReader with position tracking and container-specific read methods.
type Reader struct {
	r   io.ByteReader
	pos int
}

// NewReader creates a new Reader wrapping the given io.ByteReader.
func NewReader(r io.ByteReader) *Reader {
	return &Reader{r: r, pos: 0}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes, or -1 when the
// underlying reader cannot report it.
func (r *Reader) Remaining() int {
	if br, ok := r.r.(*bytes.Reader); ok {
		return br.Len()
	}
	return -1
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if rem := r.Remaining(); rem >= 0 && n > rem {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

// Skip advances past n bytes without copying them.
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return io.ErrUnexpectedEOF
	}
	if br, ok := r.r.(*bytes.Reader); ok {
		if n > br.Len() {
			r.pos += br.Len()
			br.Reset(nil)
			return io.ErrUnexpectedEOF
		}
		if _, err := br.Seek(int64(n), io.SeekCurrent); err != nil {
			return err
		}
		r.pos += n
		return nil
	}
	for i := 0; i < n; i++ {
		if _, err := r.ReadByte(); err != nil {
			return err
		}
	}
	return nil
}

// ReadVarint reads a little-endian base-128 integer of any length.
// Bits beyond the 64th are discarded.
func (r *Reader) ReadVarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift < 64 {
			result |= uint64(b&0x7f) << shift
		}
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// ReadCount reads a varint list length. Every list element occupies at
// least one byte, so a count larger than the remaining input is rejected
// before anything is allocated for it.
func (r *Reader) ReadCount() (int, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	rem := r.Remaining()
	if rem < 0 {
		rem = math.MaxInt32
	}
	if v > uint64(rem) {
		return 0, ErrCountTooLarge
	}
	return int(v), nil
}

// ReadIndex reads a varint table index. Values that do not fit an int
// saturate, so they stay out of range for every table.
func (r *Reader) ReadIndex() (int, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(v), nil
}

// ReadU32LE reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32LE() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadF64LE reads a little-endian IEEE-754 double (fixed 8 bytes).
func (r *Reader) ReadF64LE() (float64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}

// WrapError converts a read failure into a container format error
// positioned at the current offset.
func (r *Reader) WrapError(section string, err error) error {
	var le *lerrors.Error
	if errors.As(err, &le) {
		return err
	}
	return lerrors.UnexpectedEOF(section, r.pos, err)
}
