// Package errors provides structured error types for the luau-lift module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the container section, byte offset, field path and cause chain.
//
// The three failure classes of the decoder map onto phases:
//
//	parse   FormatError: bad version, short read, unknown constant tag. Fatal to the parse.
//	decode  DecodeError: unknown opcode, truncated window. Local to one instruction.
//	lift    LiftGap: unresolved operand or opcode without semantics. Local to one instruction.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLift, errors.KindOutOfBounds).
//		Path("constant").
//		Offset(128).
//		Detail("constant %d of %d", 9, 4).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedEOF("string table", r.Position(), io.EOF)
//	err := errors.UnknownOpcode(0xff)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
