package ir

import (
	"fmt"
	"strconv"
)

// SlotSize is the width in bytes of one VM stack slot.
const SlotSize = 8

// Register is a machine register of the lifted model.
type Register uint8

const (
	StackBase  Register = iota // frame base, slot 0
	ReturnCont                 // return continuation
)

func (r Register) String() string {
	switch r {
	case StackBase:
		return "stack"
	case ReturnCont:
		return "ret"
	}
	return "r" + strconv.Itoa(int(r))
}

// Expr is a value-producing node.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// Reg reads a register.
type Reg struct {
	R Register
}

// Const is an integer constant.
type Const struct {
	Value uint64
}

// ConstPtr is an absolute address into the container.
type ConstPtr struct {
	Addr uint64
}

// Load reads Size bytes at Addr.
type Load struct {
	Addr Expr
	Size int
}

// BinaryOp is a signed 64-bit integer operation.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDivS
	OpModS
)

var binarySymbols = [...]string{
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDivS: "/s",
	OpModS: "%s",
}

func (op BinaryOp) String() string {
	if int(op) < len(binarySymbols) {
		return binarySymbols[op]
	}
	return "binop(" + strconv.Itoa(int(op)) + ")"
}

// Binary applies Op to L and R. Placeholder marks integer arithmetic
// standing in for the VM's double arithmetic.
type Binary struct {
	L           Expr
	R           Expr
	Op          BinaryOp
	Placeholder bool
}

// UnaryOp is a one-operand operation.
type UnaryOp uint8

const (
	OpNot UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	}
	return "unop(" + strconv.Itoa(int(op)) + ")"
}

// Unary applies Op to X.
type Unary struct {
	X  Expr
	Op UnaryOp
}

// Cond is a comparison predicate. Ordered predicates are signed.
type Cond uint8

const (
	CondEq Cond = iota
	CondNe
	CondSlt
	CondSle
	CondSgt
	CondSge
)

var condSymbols = [...]string{
	CondEq:  "==",
	CondNe:  "!=",
	CondSlt: "<s",
	CondSle: "<=s",
	CondSgt: ">s",
	CondSge: ">=s",
}

func (c Cond) String() string {
	if int(c) < len(condSymbols) {
		return condSymbols[c]
	}
	return "cond(" + strconv.Itoa(int(c)) + ")"
}

// Compare yields 1 when Cond holds for L and R, else 0.
type Compare struct {
	L    Expr
	R    Expr
	Cond Cond
}

func (Reg) exprNode()      {}
func (Const) exprNode()    {}
func (ConstPtr) exprNode() {}
func (Sentinel) exprNode() {}
func (Load) exprNode()     {}
func (Binary) exprNode()   {}
func (Unary) exprNode()    {}
func (Compare) exprNode()  {}

func (e Reg) String() string      { return e.R.String() }
func (e Const) String() string    { return fmt.Sprintf("%#x", e.Value) }
func (e ConstPtr) String() string { return fmt.Sprintf("&%#x", e.Addr) }

func (e Load) String() string {
	s := "[" + bare(e.Addr) + "]"
	if e.Size != SlotSize {
		s += ":" + strconv.Itoa(e.Size)
	}
	return s
}

func (e Binary) String() string {
	return "(" + e.infix() + ")"
}

func (e Binary) infix() string {
	op := e.Op.String()
	if e.Placeholder {
		op += "~"
	}
	return e.L.String() + " " + op + " " + e.R.String()
}

func (e Unary) String() string {
	return e.Op.String() + e.X.String()
}

func (e Compare) String() string {
	return "(" + e.L.String() + " " + e.Cond.String() + " " + e.R.String() + ")"
}

// bare renders an address expression without its outer parentheses.
func bare(e Expr) string {
	if b, ok := e.(Binary); ok {
		return b.infix()
	}
	return e.String()
}

// SlotAddr is the address of VM slot i.
func SlotAddr(i uint8) Expr {
	return Binary{Op: OpAdd, L: Reg{R: StackBase}, R: Const{Value: uint64(i) * SlotSize}}
}

// LoadSlot reads VM slot i.
func LoadSlot(i uint8) Expr {
	return Load{Addr: SlotAddr(i), Size: SlotSize}
}
