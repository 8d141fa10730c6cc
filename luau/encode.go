package luau

import (
	"github.com/wippyai/luau-lift/luau/internal/binary"
)

// Container is the serializable form of a module, used to build fixtures
// and by tooling that emits bytecode.
type Container struct {
	Strings []string
	Protos  []Proto
	Entry   int
}

// Proto is one prototype record.
type Proto struct {
	Constants  []ConstantSpec
	References []int
	Code       []byte
	Lines      *LineInfo
	Locals     []LocalVar
	Upvalues   []int
	// MaxStack, Params, NumUpvalues and Vararg are the four header bytes.
	MaxStack    uint8
	Params      uint8
	NumUpvalues uint8
	Vararg      bool
	LineDefined int
	DebugName   int
	// Debug writes the local variable and upvalue tables even when empty.
	Debug bool
}

// LineInfo is the compressed line table of a prototype. Deltas holds one
// byte per instruction word; Absolute holds one entry per 1<<Gap words.
type LineInfo struct {
	Deltas   []byte
	Absolute []uint32
	Gap      uint8
}

// LocalVar is one local variable debug record.
type LocalVar struct {
	Name    int
	StartPC int
	EndPC   int
	Reg     uint8
}

// ConstantSpec describes one constant to encode.
type ConstantSpec struct {
	Keys   []int
	Number float64
	Index  int
	Import ImportChain
	Kind   ValueKind
}

// Constant helpers for fixtures.
func NilConstant() ConstantSpec { return ConstantSpec{Kind: KindNil} }
func NumberConstant(f float64) ConstantSpec { return ConstantSpec{Kind: KindNumber, Number: f} }
func StringConstant(index int) ConstantSpec { return ConstantSpec{Kind: KindString, Index: index} }
func ClosureConstant(fn int) ConstantSpec { return ConstantSpec{Kind: KindClosure, Index: fn} }
func ImportConstant(c ImportChain) ConstantSpec { return ConstantSpec{Kind: KindImport, Import: c} }
func TableConstant(keys ...int) ConstantSpec { return ConstantSpec{Kind: KindTable, Keys: keys} }

func BoolConstant(b bool) ConstantSpec {
	if b {
		return ConstantSpec{Kind: KindTrue}
	}
	return ConstantSpec{Kind: KindFalse}
}

// Encode serializes the container.
func (c *Container) Encode() []byte {
	w := binary.NewWriter()

	w.Byte(Version)

	w.WriteVarint(uint64(len(c.Strings)))
	for _, s := range c.Strings {
		w.WriteString(s)
	}

	w.WriteVarint(uint64(len(c.Protos)))
	for i := range c.Protos {
		writeProto(w, &c.Protos[i])
	}

	w.WriteVarint(uint64(c.Entry))
	return w.Bytes()
}

func writeProto(w *binary.Writer, p *Proto) {
	w.Byte(p.MaxStack)
	w.Byte(p.Params)
	w.Byte(p.NumUpvalues)
	if p.Vararg {
		w.Byte(1)
	} else {
		w.Byte(0)
	}

	w.WriteVarint(uint64(len(p.Code) / 4))
	w.WriteBytes(p.Code[:len(p.Code)/4*4])

	w.WriteVarint(uint64(len(p.Constants)))
	for _, k := range p.Constants {
		writeConstant(w, k)
	}

	w.WriteVarint(uint64(len(p.References)))
	for _, ref := range p.References {
		w.WriteVarint(uint64(ref))
	}

	w.WriteVarint(uint64(p.LineDefined))
	w.WriteVarint(uint64(p.DebugName))

	if p.Lines != nil {
		w.Byte(1)
		w.Byte(p.Lines.Gap)
		w.WriteBytes(p.Lines.Deltas)
		for _, line := range p.Lines.Absolute {
			w.WriteU32LE(line)
		}
	} else {
		w.Byte(0)
	}

	if !p.Debug && len(p.Locals) == 0 && len(p.Upvalues) == 0 {
		w.Byte(0)
		return
	}
	w.Byte(1)
	w.WriteVarint(uint64(len(p.Locals)))
	for _, l := range p.Locals {
		w.WriteVarint(uint64(l.Name))
		w.WriteVarint(uint64(l.StartPC))
		w.WriteVarint(uint64(l.EndPC))
		w.Byte(l.Reg)
	}
	w.WriteVarint(uint64(len(p.Upvalues)))
	for _, u := range p.Upvalues {
		w.WriteVarint(uint64(u))
	}
}

func writeConstant(w *binary.Writer, k ConstantSpec) {
	switch k.Kind {
	case KindNil:
		w.Byte(TagNil)
	case KindFalse:
		w.Byte(TagBoolean)
		w.Byte(0)
	case KindTrue:
		w.Byte(TagBoolean)
		w.Byte(1)
	case KindNumber:
		w.Byte(TagNumber)
		w.WriteF64LE(k.Number)
	case KindString:
		w.Byte(TagString)
		w.WriteVarint(uint64(k.Index))
	case KindImport:
		w.Byte(TagImport)
		w.WriteU32LE(uint32(k.Import))
	case KindTable:
		w.Byte(TagTable)
		w.WriteVarint(uint64(len(k.Keys)))
		for _, key := range k.Keys {
			w.WriteVarint(uint64(key))
		}
	case KindClosure:
		w.Byte(TagClosure)
		w.WriteVarint(uint64(k.Index))
	}
}

// Words concatenates encoded instructions into a code block.
func Words(ins ...[]byte) []byte {
	var out []byte
	for _, b := range ins {
		out = append(out, b...)
	}
	return out
}
