// Package luaulift decodes Luau bytecode containers and lifts their
// instructions into a small register-transfer IR.
//
// The library is organized into several packages with distinct responsibilities:
//
//	luaulift/            Root package with Program, the published module snapshot
//	├── luau/            Container parser, opcode table, instruction decoder, layout
//	├── ir/              Expression and statement nodes produced by the lifter
//	├── lift/            Per-opcode semantics, control-flow edges, operand rendering
//	├── errors/          Structured error types for debugging
//	└── cmd/luaulift/    Command-line inspector with an interactive browser
//
// # Quick Start
//
// Parse a container and lift one function:
//
//	m, err := luau.ParseModule(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	l := lift.New(lift.Config{})
//	insns, err := l.LiftFunction(m, m.Entry, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ins := range insns {
//	    fmt.Printf("%#x %v\n", ins.Addr, ins.Stmts)
//	}
//
// # Addresses
//
// Every address is a byte offset into the container image. Function
// positions, code spans, string ranges and jump targets all share that
// space, so a lifted ConstPtr can be looked up directly in the image.
//
// # Failure Classes
//
// A malformed container fails the whole parse. An instruction that does
// not decode fails only that instruction. An instruction whose operands
// cannot be resolved, or whose opcode has no semantics, lifts to a single
// Unimplemented statement and never aborts a walk.
//
// # Thread Safety
//
// Module is immutable once parsed and Lifter holds no per-module state;
// both are safe for concurrent use. Program publishes a replacement Module
// atomically so readers always see one complete snapshot.
package luaulift
