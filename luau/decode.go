package luau

import (
	"bytes"
	"fmt"

	lerrors "github.com/wippyai/luau-lift/errors"
	"github.com/wippyai/luau-lift/luau/internal/binary"
)

// ParseModule decodes a whole container. Any malformed or short input
// yields a format error and no Module.
func ParseModule(data []byte) (*Module, error) {
	r := binary.NewReader(bytes.NewReader(data))
	p := &parser{r: r}

	m, err := p.module()
	if err != nil {
		return nil, err
	}
	m.Size = len(data)
	return m, nil
}

// ParseModuleValidate decodes a container and checks every cross reference.
func ParseModuleValidate(data []byte) (*Module, error) {
	m, err := ParseModule(data)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

type parser struct {
	r *binary.Reader
}

func (p *parser) fail(section string, err error) error {
	return p.r.WrapError(section, err)
}

func (p *parser) module() (*Module, error) {
	version, err := p.r.ReadByte()
	if err != nil {
		return nil, p.fail("header", err)
	}
	if version != Version {
		return nil, lerrors.InvalidVersion(version, Version)
	}

	strings, err := p.stringTable()
	if err != nil {
		return nil, err
	}

	count, err := p.r.ReadCount()
	if err != nil {
		return nil, p.fail("prototype list", err)
	}
	functions := make([]Function, 0, count)
	for i := 0; i < count; i++ {
		fn, err := p.function()
		if err != nil {
			return nil, fmt.Errorf("prototype %d: %w", i, err)
		}
		functions = append(functions, fn)
	}

	entry, err := p.r.ReadIndex()
	if err != nil {
		return nil, p.fail("entry", err)
	}

	return &Module{
		Functions: functions,
		Strings:   strings,
		Entry:     entry,
	}, nil
}

func (p *parser) stringTable() ([]Range, error) {
	count, err := p.r.ReadCount()
	if err != nil {
		return nil, p.fail("string table", err)
	}
	strings := make([]Range, 0, count)
	for i := 0; i < count; i++ {
		n, err := p.r.ReadCount()
		if err != nil {
			return nil, p.fail("string table", err)
		}
		start := p.r.Position()
		if err := p.r.Skip(n); err != nil {
			return nil, p.fail("string table", err)
		}
		strings = append(strings, Range{Start: start, End: start + n})
	}
	return strings, nil
}

func (p *parser) function() (Function, error) {
	var fn Function
	fn.Position.Start = p.r.Position()

	// max stack, params, upvalues, vararg flag
	if err := p.r.Skip(4); err != nil {
		return fn, p.fail("prototype header", err)
	}

	words, err := p.r.ReadCount()
	if err != nil {
		return fn, p.fail("code", err)
	}
	fn.Code.Start = p.r.Position()
	if err := p.r.Skip(words * 4); err != nil {
		return fn, p.fail("code", err)
	}
	fn.Code.End = p.r.Position()

	if err := p.constants(&fn); err != nil {
		return fn, err
	}

	refs, err := p.r.ReadCount()
	if err != nil {
		return fn, p.fail("reference list", err)
	}
	fn.References = make([]int, 0, refs)
	for i := 0; i < refs; i++ {
		idx, err := p.r.ReadIndex()
		if err != nil {
			return fn, p.fail("reference list", err)
		}
		fn.References = append(fn.References, idx)
	}

	if _, err := p.r.ReadVarint(); err != nil {
		return fn, p.fail("line defined", err)
	}
	if fn.DebugName, err = p.r.ReadIndex(); err != nil {
		return fn, p.fail("debug name", err)
	}

	if err := p.debugInfo(words); err != nil {
		return fn, err
	}

	fn.Position.End = p.r.Position()
	return fn, nil
}

func (p *parser) constants(fn *Function) error {
	count, err := p.r.ReadCount()
	if err != nil {
		return p.fail("constant list", err)
	}
	fn.Constants = make([]Value, 0, count)
	fn.ConstantSpans = make([]Range, 0, count)
	for i := 0; i < count; i++ {
		start := p.r.Position()
		v, err := p.constant()
		if err != nil {
			return fmt.Errorf("constant %d: %w", i, err)
		}
		fn.Constants = append(fn.Constants, v)
		fn.ConstantSpans = append(fn.ConstantSpans, Range{Start: start, End: p.r.Position()})
	}
	return nil
}

func (p *parser) constant() (Value, error) {
	offset := p.r.Position()
	tag, err := p.r.ReadByte()
	if err != nil {
		return Value{}, p.fail("constant", err)
	}

	switch tag {
	case TagNil:
		return Value{Kind: KindNil}, nil

	case TagBoolean:
		b, err := p.r.ReadByte()
		if err != nil {
			return Value{}, p.fail("constant", err)
		}
		if b == 0 {
			return Value{Kind: KindFalse}, nil
		}
		return Value{Kind: KindTrue}, nil

	case TagNumber:
		f, err := p.r.ReadF64LE()
		if err != nil {
			return Value{}, p.fail("constant", err)
		}
		return Value{Kind: KindNumber, Number: f}, nil

	case TagString:
		idx, err := p.r.ReadIndex()
		if err != nil {
			return Value{}, p.fail("constant", err)
		}
		return Value{Kind: KindString, Index: idx}, nil

	case TagImport:
		w, err := p.r.ReadU32LE()
		if err != nil {
			return Value{}, p.fail("constant", err)
		}
		return Value{Kind: KindImport, Import: ImportChain(w)}, nil

	case TagTable:
		keys, err := p.r.ReadCount()
		if err != nil {
			return Value{}, p.fail("constant", err)
		}
		for i := 0; i < keys; i++ {
			if _, err := p.r.ReadVarint(); err != nil {
				return Value{}, p.fail("constant", err)
			}
		}
		return Value{Kind: KindTable}, nil

	case TagClosure:
		idx, err := p.r.ReadIndex()
		if err != nil {
			return Value{}, p.fail("constant", err)
		}
		return Value{Kind: KindClosure, Index: idx}, nil
	}

	return Value{}, lerrors.InvalidTag(offset, tag)
}

// debugInfo consumes the optional line and variable tables. Nothing is
// retained.
func (p *parser) debugInfo(words int) error {
	flag, err := p.r.ReadByte()
	if err != nil {
		return p.fail("line info", err)
	}
	if flag != 0 {
		gap, err := p.r.ReadByte()
		if err != nil {
			return p.fail("line info", err)
		}
		intervals := 0
		if words > 0 {
			intervals = ((words - 1) >> gap) + 1
		}
		if err := p.r.Skip(words + intervals*4); err != nil {
			return p.fail("line info", err)
		}
	}

	flag, err = p.r.ReadByte()
	if err != nil {
		return p.fail("debug info", err)
	}
	if flag == 0 {
		return nil
	}

	locals, err := p.r.ReadCount()
	if err != nil {
		return p.fail("local variables", err)
	}
	for i := 0; i < locals; i++ {
		// name, start pc, end pc
		for j := 0; j < 3; j++ {
			if _, err := p.r.ReadVarint(); err != nil {
				return p.fail("local variables", err)
			}
		}
		if _, err := p.r.ReadByte(); err != nil {
			return p.fail("local variables", err)
		}
	}

	upvalues, err := p.r.ReadCount()
	if err != nil {
		return p.fail("upvalue names", err)
	}
	for i := 0; i < upvalues; i++ {
		if _, err := p.r.ReadVarint(); err != nil {
			return p.fail("upvalue names", err)
		}
	}
	return nil
}
