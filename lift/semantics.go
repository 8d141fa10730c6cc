package lift

import (
	lerrors "github.com/wippyai/luau-lift/errors"
	"github.com/wippyai/luau-lift/ir"
	"github.com/wippyai/luau-lift/luau"
)

// DefaultRegistry returns a registry with every opcode that has defined
// semantics. Everything else lifts to Unimplemented.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.RegisterFunc(luau.OpNop, func(ctx *Context, _ luau.Instruction) error {
		ctx.Emit(ir.Nop{})
		return nil
	}, "nop")
	r.RegisterFunc(luau.OpBreak, func(ctx *Context, _ luau.Instruction) error {
		ctx.Emit(ir.Breakpoint{})
		return nil
	}, "break")

	r.RegisterFunc(luau.OpLoadNil, liftLoadNil, "load_nil")
	r.RegisterFunc(luau.OpLoadBoolean, liftLoadBoolean, "load_boolean")
	r.RegisterFunc(luau.OpLoadInteger, liftLoadInteger, "load_integer")
	r.Register(luau.OpLoadConstant, LoadConstantHandler{Index: luau.FieldD}, "load_constant")
	r.Register(luau.OpLoadConstantEx, LoadConstantHandler{Index: luau.FieldX}, "load_constant_ex")
	r.RegisterFunc(luau.OpMove, liftMove, "move")

	r.Register(luau.OpJump, JumpHandler{Offset: luau.FieldD}, "jump")
	r.Register(luau.OpJumpSafe, JumpHandler{Offset: luau.FieldD}, "jump")
	r.Register(luau.OpJumpEx, JumpHandler{Offset: luau.FieldE}, "jump_ex")

	r.RegisterFunc(luau.OpJumpIfTruthy, liftJumpIfTruthy, "jump_if_truthy")
	r.RegisterFunc(luau.OpJumpIfFalsy, liftJumpIfFalsy, "jump_if_falsy")
	r.Register(luau.OpJumpIfEqual, CompareHandler{Cond: ir.CondEq}, "compare")
	r.Register(luau.OpJumpIfNotEqual, CompareHandler{Cond: ir.CondNe}, "compare")
	r.Register(luau.OpJumpIfLessThan, CompareHandler{Cond: ir.CondSlt}, "compare")
	r.Register(luau.OpJumpIfLessEqual, CompareHandler{Cond: ir.CondSle}, "compare")
	r.Register(luau.OpJumpIfMoreThan, CompareHandler{Cond: ir.CondSgt}, "compare")
	r.Register(luau.OpJumpIfMoreEqual, CompareHandler{Cond: ir.CondSge}, "compare")
	r.Register(luau.OpJumpIfConstant, CompareHandler{Cond: ir.CondEq, Constant: true}, "compare_constant")
	r.Register(luau.OpJumpIfNotConstant, CompareHandler{Cond: ir.CondNe, Constant: true}, "compare_constant")

	r.RegisterFunc(luau.OpReturn, liftReturn, "return")

	r.Register(luau.OpAdd, ArithmeticHandler{Op: ir.OpAdd}, "arithmetic")
	r.Register(luau.OpSub, ArithmeticHandler{Op: ir.OpSub}, "arithmetic")
	r.Register(luau.OpMul, ArithmeticHandler{Op: ir.OpMul}, "arithmetic")
	r.Register(luau.OpDiv, ArithmeticHandler{Op: ir.OpDivS}, "arithmetic")
	r.Register(luau.OpMod, ArithmeticHandler{Op: ir.OpModS}, "arithmetic")
	r.Register(luau.OpAddConstant, ArithmeticHandler{Op: ir.OpAdd, Constant: true}, "arithmetic_constant")
	r.Register(luau.OpSubConstant, ArithmeticHandler{Op: ir.OpSub, Constant: true}, "arithmetic_constant")
	r.Register(luau.OpMulConstant, ArithmeticHandler{Op: ir.OpMul, Constant: true}, "arithmetic_constant")
	r.Register(luau.OpDivConstant, ArithmeticHandler{Op: ir.OpDivS, Constant: true}, "arithmetic_constant")
	r.Register(luau.OpModConstant, ArithmeticHandler{Op: ir.OpModS, Constant: true}, "arithmetic_constant")

	r.Register(luau.OpNot, UnaryHandler{Op: ir.OpNot}, "unary")
	r.Register(luau.OpMinus, UnaryHandler{Op: ir.OpNeg}, "unary")

	return r
}

func liftLoadNil(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(ir.StoreSlot(ins.A(), ir.Nil))
	return nil
}

func liftLoadBoolean(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(
		ir.StoreSlot(ins.A(), ir.Bool(ins.B() != 0)),
		ir.Goto{Target: ctx.Target(int64(ins.C()))},
	)
	return nil
}

func liftLoadInteger(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(ir.StoreSlot(ins.A(), ir.Const{Value: uint64(int64(ins.D()))}))
	return nil
}

func liftMove(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(ir.StoreSlot(ins.A(), ir.LoadSlot(ins.B())))
	return nil
}

func liftJumpIfTruthy(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(branch(ctx, ins, ir.LoadSlot(ins.A())))
	return nil
}

func liftJumpIfFalsy(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(branch(ctx, ins, ir.Unary{Op: ir.OpNot, X: ir.LoadSlot(ins.A())}))
	return nil
}

func liftReturn(ctx *Context, ins luau.Instruction) error {
	if ins.B() == 0 {
		return lerrors.Unsupported(lerrors.PhaseLift, "return with a variable result count")
	}
	ctx.Emit(ir.Return{
		Addr: ir.SlotAddr(ins.A()),
		Size: (int(ins.B()) - 1) * ir.SlotSize,
	})
	return nil
}

// branch builds the conditional transfer shared by the jump-if family.
// The false edge uses the opcode's fallthrough offset.
func branch(ctx *Context, ins luau.Instruction, cond ir.Expr) ir.Stmt {
	return ir.If{
		Cond:  cond,
		True:  ctx.Target(int64(ins.D())),
		False: ctx.Target(luau.FallthroughOffset(ins.Opcode())),
	}
}

// slot converts a wide operand to a slot index.
func slot(v int64) (uint8, error) {
	if v < 0 || v > 0xff {
		return 0, lerrors.New(lerrors.PhaseLift, lerrors.KindOutOfBounds).
			Path("register").
			Value(v).
			Detail("register %d out of range", v).
			Build()
	}
	return uint8(v), nil
}

// LoadConstantHandler stores a resolved constant into slot A. Index names
// the field holding the constant index.
type LoadConstantHandler struct {
	Index luau.Field
}

func (h LoadConstantHandler) Handle(ctx *Context, ins luau.Instruction) error {
	v, err := ctx.Constant(ins.Field(h.Index))
	if err != nil {
		return err
	}
	ctx.Emit(ir.StoreSlot(ins.A(), v))
	return nil
}

// JumpHandler transfers control unconditionally. Offset names the field
// holding the word offset.
type JumpHandler struct {
	Offset luau.Field
}

func (h JumpHandler) Handle(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(ir.Goto{Target: ctx.Target(ins.Field(h.Offset))})
	return nil
}

// CompareHandler branches on slot A compared with the slot in the aux
// word, or with the constant it indexes when Constant is set.
type CompareHandler struct {
	Cond     ir.Cond
	Constant bool
}

func (h CompareHandler) Handle(ctx *Context, ins luau.Instruction) error {
	var rhs ir.Expr
	if h.Constant {
		v, err := ctx.Constant(int64(ins.X()))
		if err != nil {
			return err
		}
		rhs = v
	} else {
		reg, err := slot(int64(ins.X()))
		if err != nil {
			return err
		}
		rhs = ir.LoadSlot(reg)
	}
	ctx.Emit(branch(ctx, ins, ir.Compare{Cond: h.Cond, L: ir.LoadSlot(ins.A()), R: rhs}))
	return nil
}

// ArithmeticHandler lowers the VM's double arithmetic to signed 64-bit
// integer operations on slot B and slot C (or constant C). The result is
// a placeholder; with Config.StrictFloat the instruction is left
// unimplemented instead.
type ArithmeticHandler struct {
	Op       ir.BinaryOp
	Constant bool
}

func (h ArithmeticHandler) Handle(ctx *Context, ins luau.Instruction) error {
	if ctx.Config.StrictFloat {
		return lerrors.Unsupported(lerrors.PhaseLift, "floating-point arithmetic")
	}
	var rhs ir.Expr
	if h.Constant {
		v, err := ctx.Constant(int64(ins.C()))
		if err != nil {
			return err
		}
		rhs = v
	} else {
		rhs = ir.LoadSlot(ins.C())
	}
	ctx.Gap(GapFloatArithmetic)
	ctx.Emit(ir.StoreSlot(ins.A(), ir.Binary{
		Op:          h.Op,
		L:           ir.LoadSlot(ins.B()),
		R:           rhs,
		Placeholder: true,
	}))
	return nil
}

// UnaryHandler applies Op to slot B and stores the result in slot A.
type UnaryHandler struct {
	Op ir.UnaryOp
}

func (h UnaryHandler) Handle(ctx *Context, ins luau.Instruction) error {
	ctx.Emit(ir.StoreSlot(ins.A(), ir.Unary{Op: h.Op, X: ir.LoadSlot(ins.B())}))
	return nil
}
