package luau

import "strconv"

// Opcode is the first byte of an instruction word.
type Opcode byte

// Field names a raw operand slot of an instruction.
type Field byte

const (
	FieldA Field = iota // byte 1
	FieldB              // byte 2
	FieldC              // byte 3
	FieldD              // signed 16 bits from bytes 2..3
	FieldE              // signed 24 bits from bytes 1..3
	FieldX              // signed 32-bit aux word at byte 4
)

func (f Field) String() string {
	switch f {
	case FieldA:
		return "A"
	case FieldB:
		return "B"
	case FieldC:
		return "C"
	case FieldD:
		return "D"
	case FieldE:
		return "E"
	case FieldX:
		return "X"
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

// OperandType tells consumers how to interpret a raw operand value.
type OperandType byte

const (
	OperandLocation OperandType = iota // signed relative word offset
	OperandRegister                    // stack slot index
	OperandUpValue                     // upvalue index
	OperandBoolean
	OperandInteger
	OperandConstant // index into the owning function's constant list
	OperandFunction // index into the owning function's reference list
	OperandImport   // packed import chain
	OperandBuiltIn  // built-in function id
)

func (t OperandType) String() string {
	switch t {
	case OperandLocation:
		return "location"
	case OperandRegister:
		return "register"
	case OperandUpValue:
		return "upvalue"
	case OperandBoolean:
		return "boolean"
	case OperandInteger:
		return "integer"
	case OperandConstant:
		return "constant"
	case OperandFunction:
		return "function"
	case OperandImport:
		return "import"
	case OperandBuiltIn:
		return "builtin"
	}
	return "OperandType(" + strconv.Itoa(int(t)) + ")"
}

// Operand is one entry of an opcode's operand schema.
type Operand struct {
	Field Field
	Type  OperandType
}

// OpInfo describes an opcode: mnemonic, encoded length and ordered operands.
type OpInfo struct {
	Mnemonic string
	Operands []Operand
	Length   int
	Opcode   Opcode
}

// Lookup returns the table entry for an opcode byte.
func Lookup(op byte) (OpInfo, bool) {
	if int(op) >= len(opTable) {
		return OpInfo{}, false
	}
	return opTable[op], true
}

// NumOpcodes is the number of defined opcodes; valid bytes are [0, NumOpcodes).
const NumOpcodes = int(opcodeCount)

// Valid reports whether op is a defined opcode.
func (op Opcode) Valid() bool {
	return int(op) < len(opTable)
}

// Info returns the table entry for op. The zero OpInfo is returned for
// undefined opcodes.
func (op Opcode) Info() OpInfo {
	info, _ := Lookup(byte(op))
	return info
}

// Len returns the encoded length of op in bytes, or 0 if op is undefined.
func (op Opcode) Len() int {
	return op.Info().Length
}

func (op Opcode) String() string {
	if !op.Valid() {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return opTable[op].Mnemonic
}

// LocationBias is added to a Location operand before jump resolution.
// The fast-call family counts its skip distance from the call that follows.
func (op Opcode) LocationBias() int64 {
	switch op {
	case OpFastCall, OpFastCall1, OpFastCall2, OpFastCall2K:
		return 1
	}
	return 0
}

func ops(pairs ...Operand) []Operand { return pairs }

var (
	aReg = Operand{FieldA, OperandRegister}
	bReg = Operand{FieldB, OperandRegister}
	cReg = Operand{FieldC, OperandRegister}
	xReg = Operand{FieldX, OperandRegister}
	aInt = Operand{FieldA, OperandInteger}
	bInt = Operand{FieldB, OperandInteger}
	cInt = Operand{FieldC, OperandInteger}
	dInt = Operand{FieldD, OperandInteger}
	eInt = Operand{FieldE, OperandInteger}
	xInt = Operand{FieldX, OperandInteger}
	bBool = Operand{FieldB, OperandBoolean}
	bUpv  = Operand{FieldB, OperandUpValue}
	bK    = Operand{FieldB, OperandConstant}
	cK    = Operand{FieldC, OperandConstant}
	dK    = Operand{FieldD, OperandConstant}
	xK    = Operand{FieldX, OperandConstant}
	cLoc  = Operand{FieldC, OperandLocation}
	dLoc  = Operand{FieldD, OperandLocation}
	eLoc  = Operand{FieldE, OperandLocation}
	dFunc = Operand{FieldD, OperandFunction}
	xImp  = Operand{FieldX, OperandImport}
	aFn   = Operand{FieldA, OperandBuiltIn}
)

var opTable = [opcodeCount]OpInfo{
	OpNop:   {Mnemonic: "nop", Length: 4},
	OpBreak: {Mnemonic: "break", Length: 4},

	OpLoadNil:      {Mnemonic: "load_nil", Length: 4, Operands: ops(aReg)},
	OpLoadBoolean:  {Mnemonic: "load_boolean", Length: 4, Operands: ops(aReg, bBool, cLoc)},
	OpLoadInteger:  {Mnemonic: "load_integer", Length: 4, Operands: ops(aReg, dInt)},
	OpLoadConstant: {Mnemonic: "load_constant", Length: 4, Operands: ops(aReg, dK)},

	OpMove: {Mnemonic: "move", Length: 4, Operands: ops(aReg, bReg)},

	OpGetGlobal: {Mnemonic: "get_global", Length: 8, Operands: ops(aReg, xK)},
	OpSetGlobal: {Mnemonic: "set_global", Length: 8, Operands: ops(aReg, xK)},

	OpGetUpValue:    {Mnemonic: "get_upvalue", Length: 4, Operands: ops(aReg, bUpv)},
	OpSetUpValue:    {Mnemonic: "set_upvalue", Length: 4, Operands: ops(aReg, bUpv)},
	OpCloseUpValues: {Mnemonic: "close_upvalues", Length: 4, Operands: ops(aReg)},

	OpGetImport: {Mnemonic: "get_import", Length: 8, Operands: ops(aReg, dK, xImp)},

	OpGetTable:      {Mnemonic: "get_table", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpSetTable:      {Mnemonic: "set_table", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpGetTableKey:   {Mnemonic: "get_table_key", Length: 8, Operands: ops(aReg, bReg, xK)},
	OpSetTableKey:   {Mnemonic: "set_table_key", Length: 8, Operands: ops(aReg, bReg, xK)},
	OpGetTableIndex: {Mnemonic: "get_table_index", Length: 4, Operands: ops(aReg, bReg, cInt)},
	OpSetTableIndex: {Mnemonic: "set_table_index", Length: 4, Operands: ops(aReg, bReg, cInt)},

	OpNewClosure: {Mnemonic: "new_closure", Length: 4, Operands: ops(aReg, dFunc)},

	OpNameCall: {Mnemonic: "name_call", Length: 8, Operands: ops(aReg, bReg, xK)},
	OpCall:     {Mnemonic: "call", Length: 4, Operands: ops(aReg, bInt, cInt)},
	OpReturn:   {Mnemonic: "return", Length: 4, Operands: ops(aReg, bInt)},

	OpJump:     {Mnemonic: "jump", Length: 4, Operands: ops(dLoc)},
	OpJumpSafe: {Mnemonic: "jump_safe", Length: 4, Operands: ops(dLoc)},

	OpJumpIfTruthy:    {Mnemonic: "jump_if_truthy", Length: 4, Operands: ops(aReg, dLoc)},
	OpJumpIfFalsy:     {Mnemonic: "jump_if_falsy", Length: 4, Operands: ops(aReg, dLoc)},
	OpJumpIfEqual:     {Mnemonic: "jump_if_equal", Length: 8, Operands: ops(aReg, xReg, dLoc)},
	OpJumpIfLessEqual: {Mnemonic: "jump_if_less_equal", Length: 8, Operands: ops(aReg, xReg, dLoc)},
	OpJumpIfLessThan:  {Mnemonic: "jump_if_less_than", Length: 8, Operands: ops(aReg, xReg, dLoc)},
	OpJumpIfNotEqual:  {Mnemonic: "jump_if_not_equal", Length: 8, Operands: ops(aReg, xReg, dLoc)},
	OpJumpIfMoreThan:  {Mnemonic: "jump_if_more_than", Length: 8, Operands: ops(aReg, xReg, dLoc)},
	OpJumpIfMoreEqual: {Mnemonic: "jump_if_more_equal", Length: 8, Operands: ops(aReg, xReg, dLoc)},

	OpAdd: {Mnemonic: "add", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpSub: {Mnemonic: "sub", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpMul: {Mnemonic: "mul", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpDiv: {Mnemonic: "div", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpMod: {Mnemonic: "mod", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpPow: {Mnemonic: "pow", Length: 4, Operands: ops(aReg, bReg, cReg)},

	OpAddConstant: {Mnemonic: "add_constant", Length: 4, Operands: ops(aReg, bReg, cK)},
	OpSubConstant: {Mnemonic: "sub_constant", Length: 4, Operands: ops(aReg, bReg, cK)},
	OpMulConstant: {Mnemonic: "mul_constant", Length: 4, Operands: ops(aReg, bReg, cK)},
	OpDivConstant: {Mnemonic: "div_constant", Length: 4, Operands: ops(aReg, bReg, cK)},
	OpModConstant: {Mnemonic: "mod_constant", Length: 4, Operands: ops(aReg, bReg, cK)},
	OpPowConstant: {Mnemonic: "pow_constant", Length: 4, Operands: ops(aReg, bReg, cK)},

	OpAnd: {Mnemonic: "and", Length: 4, Operands: ops(aReg, bReg, cReg)},
	OpOr:  {Mnemonic: "or", Length: 4, Operands: ops(aReg, bReg, cReg)},

	OpAndConstant: {Mnemonic: "and_constant", Length: 4, Operands: ops(aReg, bReg, cK)},
	OpOrConstant:  {Mnemonic: "or_constant", Length: 4, Operands: ops(aReg, bReg, cK)},

	OpConcat: {Mnemonic: "concat", Length: 4, Operands: ops(aReg, bReg, cReg)},

	OpNot:    {Mnemonic: "not", Length: 4, Operands: ops(aReg, bReg)},
	OpMinus:  {Mnemonic: "minus", Length: 4, Operands: ops(aReg, bReg)},
	OpLength: {Mnemonic: "length", Length: 4, Operands: ops(aReg, bReg)},

	OpNewTable: {Mnemonic: "new_table", Length: 8, Operands: ops(aReg, bInt, xInt)},
	OpDupTable: {Mnemonic: "dup_table", Length: 4, Operands: ops(aReg, dK)},

	OpSetList: {Mnemonic: "set_list", Length: 8, Operands: ops(aReg, bReg, cInt, xInt)},

	OpForNumericPrep: {Mnemonic: "for_numeric_prep", Length: 4, Operands: ops(aReg, dLoc)},
	OpForNumericLoop: {Mnemonic: "for_numeric_loop", Length: 4, Operands: ops(aReg, dLoc)},
	OpForGenericLoop: {Mnemonic: "for_generic_loop", Length: 8, Operands: ops(aReg, xInt, dLoc)},

	OpForGenericPrepINext: {Mnemonic: "for_generic_prep_i_next", Length: 4, Operands: ops(aReg, dLoc)},
	OpForGenericLoopINext: {Mnemonic: "for_generic_loop_i_next", Length: 4, Operands: ops(aReg, dLoc)},
	OpForGenericPrepNext:  {Mnemonic: "for_generic_prep_next", Length: 4, Operands: ops(aReg, dLoc)},
	OpForGenericLoopNext:  {Mnemonic: "for_generic_loop_next", Length: 4, Operands: ops(aReg, dLoc)},

	OpGetVariadic: {Mnemonic: "get_variadic", Length: 4, Operands: ops(aReg, bInt)},

	OpDupClosure: {Mnemonic: "dup_closure", Length: 4, Operands: ops(aReg, dK)},

	OpPrepVariadic: {Mnemonic: "prep_variadic", Length: 4, Operands: ops(aInt)},

	OpLoadConstantEx: {Mnemonic: "load_constant_ex", Length: 8, Operands: ops(aReg, xK)},

	OpJumpEx: {Mnemonic: "jump_ex", Length: 4, Operands: ops(eLoc)},

	OpFastCall: {Mnemonic: "fast_call", Length: 4, Operands: ops(aFn, cLoc)},

	OpCoverage: {Mnemonic: "coverage", Length: 4, Operands: ops(eInt)},
	OpCapture:  {Mnemonic: "capture", Length: 4},

	OpJumpIfConstant:    {Mnemonic: "jump_if_constant", Length: 8, Operands: ops(aReg, xK, dLoc)},
	OpJumpIfNotConstant: {Mnemonic: "jump_if_not_constant", Length: 8, Operands: ops(aReg, xK, dLoc)},

	OpFastCall1:  {Mnemonic: "fast_call1", Length: 4, Operands: ops(aFn, bReg, cLoc)},
	OpFastCall2:  {Mnemonic: "fast_call2", Length: 8, Operands: ops(aFn, bReg, xReg, cLoc)},
	OpFastCall2K: {Mnemonic: "fast_call2_k", Length: 8, Operands: ops(aFn, bReg, xK, cLoc)},

	OpForGenericPrep: {Mnemonic: "for_generic_prep", Length: 4, Operands: ops(aReg, dLoc)},

	OpJumpIfNil:     {Mnemonic: "jump_if_nil", Length: 8, Operands: ops(aReg, dLoc, xInt)},
	OpJumpIfBoolean: {Mnemonic: "jump_if_boolean", Length: 8, Operands: ops(aReg, dLoc, xInt)},
	OpJumpIfNumber:  {Mnemonic: "jump_if_number", Length: 8, Operands: ops(aReg, dLoc, xInt)},
	OpJumpIfString:  {Mnemonic: "jump_if_string", Length: 8, Operands: ops(aReg, dLoc, xInt)},
}

func init() {
	for i := range opTable {
		opTable[i].Opcode = Opcode(i)
	}
}
