package luau

import "strconv"

// BuiltIn identifies a function the VM may call through the fast-call path.
type BuiltIn uint8

const (
	BuiltInAssert BuiltIn = iota + 1

	BuiltInAbs
	BuiltInAcos
	BuiltInAsin
	BuiltInAtan2
	BuiltInAtan
	BuiltInCeil
	BuiltInCosh
	BuiltInCos
	BuiltInDeg
	BuiltInExp
	BuiltInFloor
	BuiltInFmod
	BuiltInFrexp
	BuiltInLdexp
	BuiltInLog10
	BuiltInLog
	BuiltInMax
	BuiltInMin
	BuiltInModf
	BuiltInPow
	BuiltInRad
	BuiltInSinh
	BuiltInSin
	BuiltInSqrt
	BuiltInTanh
	BuiltInTan

	BuiltInArshift
	BuiltInBand
	BuiltInBnot
	BuiltInBor
	BuiltInBxor
	BuiltInBtest
	BuiltInExtract
	BuiltInLrotate
	BuiltInLshift
	BuiltInReplace
	BuiltInRrotate
	BuiltInRshift

	BuiltInType

	BuiltInByte
	BuiltInChar
	BuiltInLen

	BuiltInTypeof

	BuiltInSub

	BuiltInClamp
	BuiltInSign
	BuiltInRound

	BuiltInRawset
	BuiltInRawget
	BuiltInRawequal

	BuiltInTinsert
	BuiltInTunpack

	BuiltInVector

	BuiltInCountlz
	BuiltInCountrz

	BuiltInSelect
)

var builtinNames = [...]string{
	BuiltInAssert:   "assert",
	BuiltInAbs:      "math.abs",
	BuiltInAcos:     "math.acos",
	BuiltInAsin:     "math.asin",
	BuiltInAtan2:    "math.atan2",
	BuiltInAtan:     "math.atan",
	BuiltInCeil:     "math.ceil",
	BuiltInCosh:     "math.cosh",
	BuiltInCos:      "math.cos",
	BuiltInDeg:      "math.deg",
	BuiltInExp:      "math.exp",
	BuiltInFloor:    "math.floor",
	BuiltInFmod:     "math.fmod",
	BuiltInFrexp:    "math.frexp",
	BuiltInLdexp:    "math.ldexp",
	BuiltInLog10:    "math.log10",
	BuiltInLog:      "math.log",
	BuiltInMax:      "math.max",
	BuiltInMin:      "math.min",
	BuiltInModf:     "math.modf",
	BuiltInPow:      "math.pow",
	BuiltInRad:      "math.rad",
	BuiltInSinh:     "math.sinh",
	BuiltInSin:      "math.sin",
	BuiltInSqrt:     "math.sqrt",
	BuiltInTanh:     "math.tanh",
	BuiltInTan:      "math.tan",
	BuiltInArshift:  "bit32.arshift",
	BuiltInBand:     "bit32.band",
	BuiltInBnot:     "bit32.bnot",
	BuiltInBor:      "bit32.bor",
	BuiltInBxor:     "bit32.bxor",
	BuiltInBtest:    "bit32.btest",
	BuiltInExtract:  "bit32.extract",
	BuiltInLrotate:  "bit32.lrotate",
	BuiltInLshift:   "bit32.lshift",
	BuiltInReplace:  "bit32.replace",
	BuiltInRrotate:  "bit32.rrotate",
	BuiltInRshift:   "bit32.rshift",
	BuiltInType:     "type",
	BuiltInByte:     "string.byte",
	BuiltInChar:     "string.char",
	BuiltInLen:      "string.len",
	BuiltInTypeof:   "typeof",
	BuiltInSub:      "string.sub",
	BuiltInClamp:    "math.clamp",
	BuiltInSign:     "math.sign",
	BuiltInRound:    "math.round",
	BuiltInRawset:   "rawset",
	BuiltInRawget:   "rawget",
	BuiltInRawequal: "rawequal",
	BuiltInTinsert:  "table.insert",
	BuiltInTunpack:  "table.unpack",
	BuiltInVector:   "vector",
	BuiltInCountlz:  "bit32.countlz",
	BuiltInCountrz:  "bit32.countrz",
	BuiltInSelect:   "select",
}

// BuiltInFromID converts a raw operand byte. Ids outside 1..BuiltInSelect
// are rejected.
func BuiltInFromID(id uint8) (BuiltIn, bool) {
	b := BuiltIn(id)
	if b < BuiltInAssert || b > BuiltInSelect {
		return 0, false
	}
	return b, true
}

func (b BuiltIn) String() string {
	if b >= BuiltInAssert && b <= BuiltInSelect {
		return builtinNames[b]
	}
	return "builtin(" + strconv.Itoa(int(b)) + ")"
}
