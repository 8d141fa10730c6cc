package lift

import (
	"fmt"
	"math"

	lerrors "github.com/wippyai/luau-lift/errors"
	"github.com/wippyai/luau-lift/ir"
	"github.com/wippyai/luau-lift/luau"
)

// Gap names a known way the lifted IR departs from VM semantics while
// still producing statements.
type Gap string

const (
	// GapFloatArithmetic: double arithmetic lowered to signed integer ops.
	GapFloatArithmetic Gap = "float_arithmetic"
	// GapFloatConstant: a number constant lowered to its raw bits.
	GapFloatConstant Gap = "float_constant"
)

// Context carries the state of one instruction lift.
type Context struct {
	Module *luau.Module
	Config Config
	Addr   uint64

	fn    *luau.Function
	stmts []ir.Stmt
	gaps  []Gap
}

func newContext(m *luau.Module, cfg Config, addr uint64) *Context {
	return &Context{Module: m, Config: cfg, Addr: addr}
}

// Emit appends statements to the lift output.
func (c *Context) Emit(stmts ...ir.Stmt) {
	c.stmts = append(c.stmts, stmts...)
}

// Gap records a known semantic gap. Each gap is recorded once.
func (c *Context) Gap(g Gap) {
	for _, have := range c.gaps {
		if have == g {
			return
		}
	}
	c.gaps = append(c.gaps, g)
}

// Target resolves a jump offset relative to the current instruction.
func (c *Context) Target(offset int64) uint64 {
	return luau.JumpTarget(c.Addr, offset)
}

// Function returns the function whose code contains the current address.
func (c *Context) Function() (*luau.Function, error) {
	if c.fn != nil {
		return c.fn, nil
	}
	if c.Module == nil {
		return nil, lerrors.InvalidInput(lerrors.PhaseLift, "no module")
	}
	_, fn, ok := c.Module.FunctionAt(c.Addr)
	if !ok {
		return nil, lerrors.New(lerrors.PhaseLift, lerrors.KindOutOfBounds).
			Path("function").
			Value(c.Addr).
			Detail("address %#x is outside every function", c.Addr).
			Build()
	}
	c.fn = fn
	return fn, nil
}

// Constant resolves the owning function's constant at index into an IR value.
func (c *Context) Constant(index int64) (ir.Expr, error) {
	fn, err := c.Function()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= int64(len(fn.Constants)) {
		return nil, lerrors.OutOfBounds(lerrors.PhaseLift, []string{"constant"}, clampIndex(index), len(fn.Constants))
	}
	return c.Value(fn.Constants[index])
}

// Value lowers a constant value.
func (c *Context) Value(v luau.Value) (ir.Expr, error) {
	switch v.Kind {
	case luau.KindNil:
		return ir.Nil, nil
	case luau.KindFalse:
		return ir.False, nil
	case luau.KindTrue:
		return ir.True, nil

	case luau.KindNumber:
		c.Gap(GapFloatConstant)
		return ir.Const{Value: math.Float64bits(v.Number)}, nil

	case luau.KindString:
		if v.Index == 0 {
			return ir.ConstPtr{Addr: 0}, nil
		}
		if c.Module == nil {
			return nil, lerrors.InvalidInput(lerrors.PhaseLift, "no module")
		}
		r, ok := c.Module.String(v.Index)
		if !ok {
			return nil, lerrors.OutOfBounds(lerrors.PhaseLift, []string{"string"}, v.Index, len(c.Module.Strings))
		}
		return ir.ConstPtr{Addr: uint64(r.Start)}, nil

	case luau.KindClosure:
		if c.Module == nil {
			return nil, lerrors.InvalidInput(lerrors.PhaseLift, "no module")
		}
		fn, ok := c.Module.Function(v.Index)
		if !ok {
			return nil, lerrors.OutOfBounds(lerrors.PhaseLift, []string{"function"}, v.Index, len(c.Module.Functions))
		}
		return ir.ConstPtr{Addr: uint64(fn.Code.Start)}, nil

	case luau.KindImport:
		return nil, lerrors.Unsupported(lerrors.PhaseLift, "import constant has no lowering")
	case luau.KindTable:
		return nil, lerrors.Unsupported(lerrors.PhaseLift, "table constant has no lowering")
	}
	return nil, lerrors.InvalidData(lerrors.PhaseLift, []string{"constant"}, fmt.Sprintf("unknown value kind %v", v.Kind))
}

func clampIndex(i int64) int {
	if i > math.MaxInt32 {
		return math.MaxInt32
	}
	if i < math.MinInt32 {
		return math.MinInt32
	}
	return int(i)
}
