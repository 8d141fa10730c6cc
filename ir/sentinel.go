package ir

import "strconv"

// SentinelKind selects one of the fixed VM values.
type SentinelKind uint8

const (
	SentinelNil SentinelKind = iota
	SentinelFalse
	SentinelTrue
)

// Sentinel bit patterns, boxed in the NaN space above the canonical quiet NaN.
const (
	NilBits   uint64 = 0xFFF9000000000000
	FalseBits uint64 = 0xFFFA000000000000
	TrueBits  uint64 = 0xFFFA000000000001
)

// Sentinel is the fixed value for nil, false or true.
type Sentinel struct {
	Kind SentinelKind
}

// Nil, False and True are the three sentinel expressions.
var (
	Nil   = Sentinel{Kind: SentinelNil}
	False = Sentinel{Kind: SentinelFalse}
	True  = Sentinel{Kind: SentinelTrue}
)

// Bool returns the sentinel for b.
func Bool(b bool) Sentinel {
	if b {
		return True
	}
	return False
}

// Bits returns the sentinel's fixed bit pattern.
func (s Sentinel) Bits() uint64 {
	switch s.Kind {
	case SentinelFalse:
		return FalseBits
	case SentinelTrue:
		return TrueBits
	}
	return NilBits
}

func (s Sentinel) String() string {
	switch s.Kind {
	case SentinelNil:
		return "nil"
	case SentinelFalse:
		return "false"
	case SentinelTrue:
		return "true"
	}
	return "sentinel(" + strconv.Itoa(int(s.Kind)) + ")"
}
