package luau

import (
	"fmt"
	"strconv"
)

// Range is a half-open byte range [Start, End) into the container buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range covers no bytes.
func (r Range) Empty() bool { return r.Len() == 0 }

// Contains reports whether addr falls inside the range.
func (r Range) Contains(addr uint64) bool {
	return addr >= uint64(r.Start) && addr < uint64(r.End)
}

// Covers reports whether o lies entirely inside r.
func (r Range) Covers(o Range) bool {
	return o.Start >= r.Start && o.End <= r.End && o.Start <= o.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%#x, %#x)", r.Start, r.End)
}

// ValueKind tags a constant value.
type ValueKind uint8

const (
	KindNil ValueKind = iota
	KindFalse
	KindTrue
	KindNumber
	KindString
	KindClosure
	KindImport
	KindTable
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindClosure:
		return "closure"
	case KindImport:
		return "import"
	case KindTable:
		return "table"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is one entry of a function's constant list.
type Value struct {
	Number float64
	Kind   ValueKind
	// Index is the 1-based string index for KindString (0 means no string)
	// and the function index for KindClosure.
	Index  int
	Import ImportChain
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindString:
		return "string#" + strconv.Itoa(v.Index)
	case KindClosure:
		return "closure#" + strconv.Itoa(v.Index)
	case KindImport:
		return fmt.Sprintf("import%v", v.Import.Indices())
	}
	return v.Kind.String()
}

// Function is one parsed prototype.
type Function struct {
	Constants     []Value
	ConstantSpans []Range
	References    []int
	// Position covers the whole prototype record including debug info.
	Position Range
	Code     Range
	// DebugName is a 1-based string index, 0 when the function is anonymous.
	DebugName int
}

// Constant returns the i-th constant.
func (f *Function) Constant(i int) (Value, bool) {
	if i < 0 || i >= len(f.Constants) {
		return Value{}, false
	}
	return f.Constants[i], true
}

// Reference returns the function index of the i-th child prototype.
func (f *Function) Reference(i int) (int, bool) {
	if i < 0 || i >= len(f.References) {
		return 0, false
	}
	return f.References[i], true
}

// ConstantSpan returns the byte range of the whole constant list.
func (f *Function) ConstantSpan() Range {
	if len(f.ConstantSpans) == 0 {
		return Range{Start: f.Code.End, End: f.Code.End}
	}
	return Range{Start: f.ConstantSpans[0].Start, End: f.ConstantSpans[len(f.ConstantSpans)-1].End}
}

// InstructionCount returns the number of 4-byte words in the code block.
func (f *Function) InstructionCount() int {
	return f.Code.Len() / 4
}

// Module is a parsed container. It is immutable once returned by ParseModule.
type Module struct {
	Functions []Function
	Strings   []Range
	Entry     int
	Size      int
}

// Function returns the i-th prototype.
func (m *Module) Function(i int) (*Function, bool) {
	if i < 0 || i >= len(m.Functions) {
		return nil, false
	}
	return &m.Functions[i], true
}

// String returns the range of the 1-based string index. Index 0 is the
// "no string" marker and is never found.
func (m *Module) String(index int) (Range, bool) {
	if index <= 0 || index > len(m.Strings) {
		return Range{}, false
	}
	return m.Strings[index-1], true
}

// EntryPoint returns the code start address of the entry function.
func (m *Module) EntryPoint() (uint64, bool) {
	f, ok := m.Function(m.Entry)
	if !ok {
		return 0, false
	}
	return uint64(f.Code.Start), true
}

// FunctionAt returns the function whose code block contains addr.
func (m *Module) FunctionAt(addr uint64) (int, *Function, bool) {
	for i := range m.Functions {
		if m.Functions[i].Code.Contains(addr) {
			return i, &m.Functions[i], true
		}
	}
	return -1, nil, false
}

// StringSpan returns the byte range covering every string in the table.
func (m *Module) StringSpan() Range {
	if len(m.Strings) == 0 {
		return Range{}
	}
	return Range{Start: m.Strings[0].Start, End: m.Strings[len(m.Strings)-1].End}
}

// StringBytes returns the bytes of the 1-based string index from the
// buffer the module was parsed from.
func (m *Module) StringBytes(data []byte, index int) ([]byte, bool) {
	r, ok := m.String(index)
	if !ok || r.End > len(data) {
		return nil, false
	}
	return data[r.Start:r.End], true
}
