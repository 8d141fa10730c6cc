package ir

import "testing"

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		node interface{ String() string }
		want string
	}{
		{"slot address", SlotAddr(2), "(stack + 0x10)"},
		{"slot load", LoadSlot(1), "[stack + 0x8]"},
		{"store sentinel", StoreSlot(0, Nil), "[stack + 0x0] = nil"},
		{"store move", StoreSlot(2, LoadSlot(1)), "[stack + 0x10] = [stack + 0x8]"},
		{"const", Const{Value: 5}, "0x5"},
		{"const ptr", ConstPtr{Addr: 0x20}, "&0x20"},
		{"placeholder", Binary{Op: OpAdd, L: LoadSlot(1), R: LoadSlot(2), Placeholder: true}, "([stack + 0x8] +~ [stack + 0x10])"},
		{"div", Binary{Op: OpDivS, L: Const{Value: 1}, R: Const{Value: 2}}, "(0x1 /s 0x2)"},
		{"not", Unary{Op: OpNot, X: LoadSlot(0)}, "![stack + 0x0]"},
		{"compare", Compare{Cond: CondSle, L: LoadSlot(0), R: LoadSlot(1)}, "([stack + 0x0] <=s [stack + 0x8])"},
		{"goto", Goto{Target: 0x40}, "goto 0x40"},
		{"if", If{Cond: LoadSlot(0), True: 0x2c, False: 0x24}, "if [stack + 0x0] goto 0x2c else 0x24"},
		{"return", Return{Addr: SlotAddr(0), Size: 16}, "return [stack + 0x0]:16"},
		{"return none", Return{Addr: SlotAddr(3), Size: 0}, "return [stack + 0x18]:0"},
		{"unimplemented", Unimplemented{Reason: "no semantics for call"}, "unimplemented (no semantics for call)"},
		{"bare unimplemented", Unimplemented{}, "unimplemented"},
		{"nop", Nop{}, "nop"},
		{"breakpoint", Breakpoint{}, "bp"},
		{"ret register", Reg{R: ReturnCont}, "ret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelBits(t *testing.T) {
	if Nil.Bits() == False.Bits() || False.Bits() == True.Bits() || Nil.Bits() == True.Bits() {
		t.Fatal("sentinel bit patterns must be distinct")
	}
	if Bool(true) != True || Bool(false) != False {
		t.Error("Bool returned the wrong sentinel")
	}
	if True.Bits() != 0xFFFA000000000001 {
		t.Errorf("True.Bits() = %#x", True.Bits())
	}
}

func TestNodesComparable(t *testing.T) {
	a := StoreSlot(1, Binary{Op: OpMul, L: LoadSlot(2), R: Const{Value: 3}})
	b := StoreSlot(1, Binary{Op: OpMul, L: LoadSlot(2), R: Const{Value: 3}})
	if a != b {
		t.Error("identical statements should compare equal")
	}
}

func TestIsUnimplemented(t *testing.T) {
	if !IsUnimplemented([]Stmt{Unimplemented{}}) {
		t.Error("single Unimplemented not detected")
	}
	if IsUnimplemented([]Stmt{Nop{}}) || IsUnimplemented(nil) {
		t.Error("false positive")
	}
}
