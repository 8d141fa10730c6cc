// Package lift lowers Luau instructions into the IR of package ir.
//
// Semantics are looked up per opcode in a Registry. DefaultRegistry covers
// loads, moves, jumps, the conditional jump family, return, arithmetic and
// the unary operators; every other opcode lifts to ir.Unimplemented, which
// analysis treats as a hard boundary.
//
// Failures never cross instruction boundaries. A constant index out of
// range, an import or table constant, or a register operand that does not
// fit a slot turns that one instruction into a single Unimplemented
// statement and is logged at debug level. Lift only returns an error when
// the bytes do not decode.
//
//	l := lift.New(lift.Config{})
//	out, err := l.Lift(module, addr, data[addr:])
//	for _, s := range out.Stmts {
//	    fmt.Println(s)
//	}
//
// Arithmetic on VM numbers is lowered to signed integer operations marked
// as placeholders, and the result lists GapFloatArithmetic. Set
// Config.StrictFloat to lift those instructions to Unimplemented instead.
//
// Describe resolves operands for display: jump targets, constants,
// closures, import chains and built-in names.
package lift
