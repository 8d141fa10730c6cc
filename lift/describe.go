package lift

import (
	"strconv"
	"strings"

	"github.com/wippyai/luau-lift/luau"
)

// Part is one rendered piece of an operand. Import operands have one part
// per name of the chain.
type Part struct {
	Text string
	Addr uint64
	// String is the 1-based string index behind the part, 0 when none.
	// Size is then the length of the string at Addr.
	String  int
	Size    int
	HasAddr bool
}

// Operand is one operand of a described instruction.
type Operand struct {
	Parts    []Part
	Raw      int64
	Field    luau.Field
	Type     luau.OperandType
	Resolved bool
}

// Text renders the operand without string contents.
func (o Operand) Text() string {
	return o.Render(nil)
}

// Render renders the operand, substituting string contents read from the
// container image when it is given.
func (o Operand) Render(image []byte) string {
	if !o.Resolved {
		return "?" + strconv.FormatInt(o.Raw, 10)
	}
	texts := make([]string, len(o.Parts))
	for i, p := range o.Parts {
		texts[i] = p.Text
		if p.String == 0 || image == nil {
			continue
		}
		if s, ok := stringAt(image, p); ok {
			if o.Type == luau.OperandImport {
				texts[i] = s
			} else {
				texts[i] = strconv.Quote(s)
			}
		}
	}
	return strings.Join(texts, ".")
}

// Description is the mnemonic and resolved operands of one instruction.
type Description struct {
	Mnemonic string
	Operands []Operand
	Addr     uint64
	Length   int
}

func (d Description) String() string {
	return d.Render(nil)
}

// Render renders the instruction, substituting string contents from image.
func (d Description) Render(image []byte) string {
	var b strings.Builder
	b.WriteString(d.Mnemonic)
	for i, o := range d.Operands {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(o.Render(image))
	}
	return b.String()
}

// Describe decodes the instruction at addr and resolves each operand
// against m. Operands that cannot be resolved are marked, never fatal;
// the only error is a decode error.
func Describe(m *luau.Module, addr uint64, data []byte) (Description, error) {
	ins, err := luau.DecodeInstruction(data)
	if err != nil {
		return Description{}, err
	}
	info := ins.Info()
	d := Description{
		Mnemonic: info.Mnemonic,
		Addr:     addr,
		Length:   info.Length,
		Operands: make([]Operand, 0, len(info.Operands)),
	}

	var fn *luau.Function
	if m != nil {
		_, fn, _ = m.FunctionAt(addr)
	}

	for _, schema := range info.Operands {
		o := Operand{Field: schema.Field, Type: schema.Type, Raw: ins.Field(schema.Field)}
		o.Parts, o.Resolved = resolveOperand(m, fn, ins, addr, o)
		d.Operands = append(d.Operands, o)
	}
	return d, nil
}

func resolveOperand(m *luau.Module, fn *luau.Function, ins luau.Instruction, addr uint64, o Operand) ([]Part, bool) {
	switch o.Type {
	case luau.OperandLocation:
		target := luau.JumpTarget(addr, o.Raw+ins.Opcode().LocationBias())
		text := strconv.FormatInt(o.Raw, 10)
		if o.Raw >= 0 {
			text = "+" + text
		}
		return []Part{{Text: text, Addr: target, HasAddr: true}}, true

	case luau.OperandRegister:
		if o.Raw < 0 || o.Raw > 0xff {
			return nil, false
		}
		return []Part{{Text: "r" + strconv.FormatInt(o.Raw, 10)}}, true

	case luau.OperandUpValue:
		return []Part{{Text: "u" + strconv.FormatInt(o.Raw, 10)}}, true

	case luau.OperandBoolean:
		return []Part{{Text: strconv.FormatBool(o.Raw != 0)}}, true

	case luau.OperandInteger:
		return []Part{{Text: strconv.FormatInt(o.Raw, 10)}}, true

	case luau.OperandConstant:
		if fn == nil {
			return nil, false
		}
		v, ok := fn.Constant(int(o.Raw))
		if !ok || o.Raw < 0 {
			return nil, false
		}
		return valueParts(m, fn, v)

	case luau.OperandFunction:
		if fn == nil {
			return nil, false
		}
		ref, ok := fn.Reference(int(o.Raw))
		if !ok || o.Raw < 0 {
			return nil, false
		}
		return functionPart(m, ref)

	case luau.OperandImport:
		if fn == nil {
			return nil, false
		}
		return importParts(m, fn, luau.ImportChain(uint32(o.Raw)))

	case luau.OperandBuiltIn:
		if o.Raw < 0 || o.Raw > 0xff {
			return nil, false
		}
		b, ok := luau.BuiltInFromID(uint8(o.Raw))
		if !ok {
			return nil, false
		}
		return []Part{{Text: b.String()}}, true
	}
	return nil, false
}

func valueParts(m *luau.Module, fn *luau.Function, v luau.Value) ([]Part, bool) {
	switch v.Kind {
	case luau.KindString:
		if v.Index == 0 {
			return []Part{{Text: "no_string"}}, true
		}
		r, ok := m.String(v.Index)
		if !ok {
			return nil, false
		}
		return []Part{{
			Text:    "str_" + strconv.Itoa(v.Index-1),
			Addr:    uint64(r.Start),
			HasAddr: true,
			String:  v.Index,
			Size:    r.Len(),
		}}, true

	case luau.KindClosure:
		return functionPart(m, v.Index)

	case luau.KindImport:
		return importParts(m, fn, v.Import)
	}
	return []Part{{Text: v.String()}}, true
}

func functionPart(m *luau.Module, index int) ([]Part, bool) {
	target, ok := m.Function(index)
	if !ok {
		return nil, false
	}
	return []Part{{
		Text:    "func_" + strconv.Itoa(index),
		Addr:    uint64(target.Code.Start),
		HasAddr: true,
	}}, true
}

// importParts renders each name of the chain. A chain element that is
// itself an import is not followed.
func importParts(m *luau.Module, fn *luau.Function, chain luau.ImportChain) ([]Part, bool) {
	parts := make([]Part, 0, chain.Len())
	for idx := range chain.All() {
		v, ok := fn.Constant(idx)
		if !ok || v.Kind == luau.KindImport {
			return nil, false
		}
		p, ok := valueParts(m, fn, v)
		if !ok {
			return nil, false
		}
		parts = append(parts, p...)
	}
	return parts, true
}

func stringAt(image []byte, p Part) (string, bool) {
	end := p.Addr + uint64(p.Size)
	if end > uint64(len(image)) || end < p.Addr {
		return "", false
	}
	return string(image[p.Addr:end]), true
}
