package luau

// Version is the only container format version this package accepts.
const Version byte = 2

// Constant tags as written in the prototype constant list.
const (
	TagNil     byte = 0
	TagBoolean byte = 1
	TagNumber  byte = 2
	TagString  byte = 3
	TagImport  byte = 4
	TagTable   byte = 5
	TagClosure byte = 6
)

// SlotSize is the width in bytes of one virtual stack slot.
const SlotSize = 8

// Opcodes in encoding order. The byte value is the first byte of every
// instruction word.
const (
	OpNop Opcode = iota
	OpBreak

	OpLoadNil
	OpLoadBoolean
	OpLoadInteger
	OpLoadConstant

	OpMove

	OpGetGlobal
	OpSetGlobal

	OpGetUpValue
	OpSetUpValue
	OpCloseUpValues

	OpGetImport

	OpGetTable
	OpSetTable
	OpGetTableKey
	OpSetTableKey
	OpGetTableIndex
	OpSetTableIndex

	OpNewClosure

	OpNameCall
	OpCall
	OpReturn

	OpJump
	OpJumpSafe

	OpJumpIfTruthy
	OpJumpIfFalsy
	OpJumpIfEqual
	OpJumpIfLessEqual
	OpJumpIfLessThan
	OpJumpIfNotEqual
	OpJumpIfMoreThan
	OpJumpIfMoreEqual

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow

	OpAddConstant
	OpSubConstant
	OpMulConstant
	OpDivConstant
	OpModConstant
	OpPowConstant

	OpAnd
	OpOr

	OpAndConstant
	OpOrConstant

	OpConcat

	OpNot
	OpMinus
	OpLength

	OpNewTable
	OpDupTable

	OpSetList

	OpForNumericPrep
	OpForNumericLoop
	OpForGenericLoop

	OpForGenericPrepINext
	OpForGenericLoopINext // deprecated

	OpForGenericPrepNext
	OpForGenericLoopNext // deprecated

	OpGetVariadic

	OpDupClosure

	OpPrepVariadic

	OpLoadConstantEx

	OpJumpEx

	OpFastCall

	OpCoverage
	OpCapture

	OpJumpIfConstant    // deprecated
	OpJumpIfNotConstant // deprecated

	OpFastCall1
	OpFastCall2
	OpFastCall2K

	OpForGenericPrep

	OpJumpIfNil
	OpJumpIfBoolean
	OpJumpIfNumber
	OpJumpIfString

	opcodeCount
)
