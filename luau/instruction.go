package luau

import (
	"encoding/binary"
	"fmt"

	lerrors "github.com/wippyai/luau-lift/errors"
)

// Instruction is a decoded instruction window of 4 or 8 bytes.
// The bytes are copied out of the source buffer at decode time.
type Instruction struct {
	raw [8]byte
	op  Opcode
}

// DecodeInstruction validates the opcode of the first byte of data and
// that data holds the full encoded length.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return Instruction{}, lerrors.New(lerrors.PhaseDecode, lerrors.KindUnexpectedEOF).
			Detail("empty instruction window").
			Build()
	}
	op := Opcode(data[0])
	if !op.Valid() {
		return Instruction{}, lerrors.UnknownOpcode(data[0])
	}
	n := opTable[op].Length
	if len(data) < n {
		return Instruction{}, lerrors.Truncated(opTable[op].Mnemonic, len(data), n)
	}
	var ins Instruction
	ins.op = op
	copy(ins.raw[:], data[:n])
	return ins, nil
}

// Opcode returns the instruction's opcode.
func (i Instruction) Opcode() Opcode { return i.op }

// Len returns the encoded length in bytes.
func (i Instruction) Len() int { return opTable[i.op].Length }

// Info returns the opcode table entry.
func (i Instruction) Info() OpInfo { return opTable[i.op] }

// Bytes returns a copy of the encoded instruction.
func (i Instruction) Bytes() []byte {
	out := make([]byte, i.Len())
	copy(out, i.raw[:])
	return out
}

func (i Instruction) A() uint8 { return i.raw[1] }
func (i Instruction) B() uint8 { return i.raw[2] }
func (i Instruction) C() uint8 { return i.raw[3] }

// D is the signed 16-bit operand stored in bytes B and C.
func (i Instruction) D() int16 {
	return int16(binary.LittleEndian.Uint16(i.raw[2:4]))
}

// E is the signed 24-bit operand stored in bytes A, B and C.
func (i Instruction) E() int32 {
	return int32(binary.LittleEndian.Uint32(i.raw[0:4])) >> 8
}

// X is the signed 32-bit aux word. It reads as 0 for 4-byte instructions.
func (i Instruction) X() int32 {
	return int32(binary.LittleEndian.Uint32(i.raw[4:8]))
}

// HasAux reports whether the instruction carries an aux word.
func (i Instruction) HasAux() bool { return i.Len() == 8 }

// Field returns the raw value of an operand field, sign-extended for D, E and X.
func (i Instruction) Field(f Field) int64 {
	switch f {
	case FieldA:
		return int64(i.A())
	case FieldB:
		return int64(i.B())
	case FieldC:
		return int64(i.C())
	case FieldD:
		return int64(i.D())
	case FieldE:
		return int64(i.E())
	case FieldX:
		return int64(i.X())
	}
	return 0
}

func (i Instruction) String() string {
	info := opTable[i.op]
	s := info.Mnemonic
	for n, operand := range info.Operands {
		if n == 0 {
			s += " "
		} else {
			s += ", "
		}
		s += fmt.Sprintf("%s=%d", operand.Field, i.Field(operand.Field))
	}
	return s
}

// EncodeABC builds a 4-byte instruction word from byte operands.
func EncodeABC(op Opcode, a, b, c uint8) []byte {
	return []byte{byte(op), a, b, c}
}

// EncodeAD builds a 4-byte instruction word with a signed 16-bit D operand.
func EncodeAD(op Opcode, a uint8, d int16) []byte {
	out := []byte{byte(op), a, 0, 0}
	binary.LittleEndian.PutUint16(out[2:], uint16(d))
	return out
}

// EncodeE builds a 4-byte instruction word with a signed 24-bit E operand.
// Bits of e above the 24th are dropped.
func EncodeE(op Opcode, e int32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(e)<<8|uint32(op))
	return out
}

// WithAux appends an aux word to a 4-byte instruction word.
func WithAux(word []byte, x int32) []byte {
	out := make([]byte, 0, len(word)+4)
	out = append(out, word...)
	return binary.LittleEndian.AppendUint32(out, uint32(x))
}
