package ir

import (
	"fmt"
	"strconv"
)

// Stmt is one effect of a lifted instruction.
type Stmt interface {
	fmt.Stringer
	stmtNode()
}

// Nop does nothing.
type Nop struct{}

// Breakpoint traps into a debugger.
type Breakpoint struct{}

// Store writes Value as Size bytes at Addr.
type Store struct {
	Addr  Expr
	Value Expr
	Size  int
}

// Goto transfers control to an absolute address.
type Goto struct {
	Target uint64
}

// If transfers control to True when Cond is nonzero, else to False.
type If struct {
	Cond  Expr
	True  uint64
	False uint64
}

// Return leaves the function with Size bytes read at Addr.
type Return struct {
	Addr Expr
	Size int
}

// Unimplemented marks an instruction without lifted semantics.
type Unimplemented struct {
	Reason string
}

func (Nop) stmtNode()           {}
func (Breakpoint) stmtNode()    {}
func (Store) stmtNode()         {}
func (Goto) stmtNode()          {}
func (If) stmtNode()            {}
func (Return) stmtNode()        {}
func (Unimplemented) stmtNode() {}

func (Nop) String() string        { return "nop" }
func (Breakpoint) String() string { return "bp" }

func (s Store) String() string {
	lhs := Load{Addr: s.Addr, Size: s.Size}
	return lhs.String() + " = " + s.Value.String()
}

func (s Goto) String() string {
	return fmt.Sprintf("goto %#x", s.Target)
}

func (s If) String() string {
	return fmt.Sprintf("if %s goto %#x else %#x", s.Cond, s.True, s.False)
}

func (s Return) String() string {
	return "return [" + bare(s.Addr) + "]:" + strconv.Itoa(s.Size)
}

func (s Unimplemented) String() string {
	if s.Reason == "" {
		return "unimplemented"
	}
	return "unimplemented (" + s.Reason + ")"
}

// StoreSlot writes v into VM slot i.
func StoreSlot(i uint8, v Expr) Stmt {
	return Store{Addr: SlotAddr(i), Value: v, Size: SlotSize}
}

// IsUnimplemented reports whether stmts is a single Unimplemented statement.
func IsUnimplemented(stmts []Stmt) bool {
	if len(stmts) != 1 {
		return false
	}
	_, ok := stmts[0].(Unimplemented)
	return ok
}
