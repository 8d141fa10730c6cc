package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // container deserialization
	PhaseDecode   Phase = "decode"   // single instruction decoding
	PhaseLift     Phase = "lift"     // instruction to IR
	PhaseValidate Phase = "validate" // cross-reference validation
	PhaseLoad     Phase = "load"     // file and config loading
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidVersion Kind = "invalid_version"
	KindUnexpectedEOF  Kind = "unexpected_eof"
	KindInvalidTag     Kind = "invalid_tag"
	KindUnknownOpcode  Kind = "unknown_opcode"
	KindTruncated      Kind = "truncated"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindInvalidInput   Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Section    string
	Detail     string
	Path       []string
	Offset     int
	Positioned bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Positioned {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Section sets the container section being read
func (b *Builder) Section(s string) *Builder {
	b.err.Section = s
	return b
}

// Offset sets the byte offset the error refers to
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	b.err.Positioned = true
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Container format errors. All of them abort the whole parse.

// InvalidVersion creates a bad version byte error
func InvalidVersion(got, want byte) *Error {
	return &Error{
		Phase:      PhaseParse,
		Kind:       KindInvalidVersion,
		Section:    "header",
		Detail:     fmt.Sprintf("version %d, expected %d", got, want),
		Value:      got,
		Positioned: true,
	}
}

// UnexpectedEOF creates a short read error for the named section
func UnexpectedEOF(section string, offset int, cause error) *Error {
	return &Error{
		Phase:      PhaseParse,
		Kind:       KindUnexpectedEOF,
		Section:    section,
		Offset:     offset,
		Positioned: true,
		Cause:      cause,
	}
}

// InvalidTag creates an unknown constant tag error
func InvalidTag(offset int, tag byte) *Error {
	return &Error{
		Phase:      PhaseParse,
		Kind:       KindInvalidTag,
		Section:    "constant",
		Offset:     offset,
		Positioned: true,
		Detail:     fmt.Sprintf("unknown constant tag %d", tag),
		Value:      tag,
	}
}

// Instruction errors. They only affect the instruction at hand.

// UnknownOpcode creates an unrecognized opcode error
func UnknownOpcode(op byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownOpcode,
		Detail: fmt.Sprintf("opcode %d", op),
		Value:  op,
	}
}

// Truncated creates an error for an instruction window shorter than its opcode needs
func Truncated(mnemonic string, have, want int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("%s needs %d bytes, have %d", mnemonic, want, have),
		Value:  have,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a file or config loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// IsFormat reports whether err is a container format error.
func IsFormat(err error) bool {
	return hasPhase(err, PhaseParse)
}

// IsDecode reports whether err is an instruction decode error.
func IsDecode(err error) bool {
	return hasPhase(err, PhaseDecode)
}

// IsLiftGap reports whether err marks an instruction without lifted semantics.
func IsLiftGap(err error) bool {
	return hasPhase(err, PhaseLift)
}

func hasPhase(err error, phase Phase) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Phase == phase
}
