package luau

// JumpTarget resolves a relative jump. Offsets count instruction words
// from the word after the jump. Arithmetic wraps on overflow.
func JumpTarget(addr uint64, offset int64) uint64 {
	return addr + uint64(offset)*4 + 4
}

// FallthroughOffset is the jump offset that lands on the instruction
// after op, accounting for an aux word.
func FallthroughOffset(op Opcode) int64 {
	n := op.Len()
	if n == 0 {
		return 0
	}
	return int64(n/4 - 1)
}

// NextAddr returns the address of the instruction after op at addr.
func NextAddr(addr uint64, op Opcode) uint64 {
	return JumpTarget(addr, FallthroughOffset(op))
}
