package lift

import (
	"fmt"

	"github.com/wippyai/luau-lift/luau"
)

// BranchKind classifies an outgoing control-flow edge.
type BranchKind uint8

const (
	BranchUnconditional BranchKind = iota
	BranchTrue
	BranchFalse
	BranchIndirect
	BranchReturn
)

func (k BranchKind) String() string {
	switch k {
	case BranchUnconditional:
		return "unconditional"
	case BranchTrue:
		return "true"
	case BranchFalse:
		return "false"
	case BranchIndirect:
		return "indirect"
	case BranchReturn:
		return "return"
	}
	return fmt.Sprintf("branch(%d)", uint8(k))
}

// Branch is one outgoing edge. Target is zero for Indirect and Return.
type Branch struct {
	Target uint64
	Kind   BranchKind
}

func (b Branch) String() string {
	switch b.Kind {
	case BranchIndirect, BranchReturn:
		return b.Kind.String()
	}
	return fmt.Sprintf("%s %#x", b.Kind, b.Target)
}

// Info is the length and control flow of one instruction.
type Info struct {
	Branches []Branch
	Length   int
}

// Branches computes the outgoing edges of ins located at addr.
// Straight-line instructions have none.
func Branches(ins luau.Instruction, addr uint64) []Branch {
	op := ins.Opcode()
	next := luau.JumpTarget(addr, luau.FallthroughOffset(op))

	switch op {
	case luau.OpLoadBoolean:
		return []Branch{{Kind: BranchUnconditional, Target: luau.JumpTarget(addr, int64(ins.C()))}}

	case luau.OpReturn:
		return []Branch{{Kind: BranchReturn}}

	case luau.OpJump, luau.OpJumpSafe:
		return []Branch{{Kind: BranchUnconditional, Target: luau.JumpTarget(addr, int64(ins.D()))}}

	case luau.OpJumpEx:
		return []Branch{{Kind: BranchUnconditional, Target: luau.JumpTarget(addr, int64(ins.E()))}}

	case luau.OpJumpIfTruthy, luau.OpJumpIfFalsy,
		luau.OpJumpIfEqual, luau.OpJumpIfNotEqual,
		luau.OpJumpIfLessThan, luau.OpJumpIfLessEqual,
		luau.OpJumpIfMoreThan, luau.OpJumpIfMoreEqual,
		luau.OpForNumericPrep, luau.OpForNumericLoop, luau.OpForGenericLoop,
		luau.OpForGenericPrepINext, luau.OpForGenericLoopINext,
		luau.OpForGenericPrepNext, luau.OpForGenericLoopNext,
		luau.OpJumpIfConstant, luau.OpJumpIfNotConstant,
		luau.OpForGenericPrep:
		return []Branch{
			{Kind: BranchFalse, Target: next},
			{Kind: BranchTrue, Target: luau.JumpTarget(addr, int64(ins.D()))},
		}

	case luau.OpJumpIfNil, luau.OpJumpIfBoolean, luau.OpJumpIfNumber, luau.OpJumpIfString:
		onFalse, onTrue := next, luau.JumpTarget(addr, int64(ins.D()))
		// the sign bit of the aux word negates the test
		if ins.X() < 0 {
			onFalse, onTrue = onTrue, onFalse
		}
		return []Branch{
			{Kind: BranchFalse, Target: onFalse},
			{Kind: BranchTrue, Target: onTrue},
		}

	case luau.OpFastCall, luau.OpFastCall1, luau.OpFastCall2, luau.OpFastCall2K:
		return []Branch{
			{Kind: BranchIndirect},
			{Kind: BranchFalse, Target: next},
			{Kind: BranchTrue, Target: luau.JumpTarget(addr, int64(ins.C())+op.LocationBias())},
		}
	}
	return nil
}
