// Package ir is the low-level semantic form produced by the lifter.
//
// The machine model is a flat byte-addressed space with two registers:
// StackBase points at slot 0 of the current frame and ReturnCont holds
// the return continuation. VM slot i lives at StackBase + 8*i and is
// always accessed as an 8-byte load or store.
//
// Expressions are values (Reg, Const, ConstPtr, Sentinel, Load, Binary,
// Unary, Compare). Statements are the effects of one instruction (Store,
// Goto, If, Return, ...). Every node renders with String for listings and
// tests:
//
//	[stack + 0x10] = [stack + 0x8]
//	if ([stack + 0x0] == [stack + 0x8]) goto 0x2c else 0x24
package ir
