package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseParse,
				Kind:       KindUnexpectedEOF,
				Section:    "string table",
				Path:       []string{"string", "3"},
				Offset:     17,
				Positioned: true,
				Detail:     "length 9",
			},
			contains: []string{"[parse]", "unexpected_eof", "in string table", "string.3", "offset 17", "length 9"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindUnknownOpcode,
			},
			contains: []string{"[decode]", "unknown_opcode"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "read file",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "read file", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoOffsetUnlessPositioned(t *testing.T) {
	err := &Error{Phase: PhaseLift, Kind: KindOutOfBounds}
	if strings.Contains(err.Error(), "offset") {
		t.Errorf("unpositioned error should not mention offset: %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidTag,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseParse, Kind: KindInvalidTag}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidTag}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseParse, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("parse container: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseParse, Kind: KindInvalidTag}) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseLift, KindOutOfBounds).
		Path("constant", "7").
		Section("code").
		Offset(64).
		Value(7).
		Cause(cause).
		Detail("constant %d of %d", 7, 3).
		Build()

	if err.Phase != PhaseLift {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseLift)
	}
	if err.Kind != KindOutOfBounds {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
	}
	if len(err.Path) != 2 || err.Path[0] != "constant" || err.Path[1] != "7" {
		t.Errorf("Path = %v, want [constant 7]", err.Path)
	}
	if err.Section != "code" {
		t.Errorf("Section = %q, want code", err.Section)
	}
	if !err.Positioned || err.Offset != 64 {
		t.Errorf("Offset = %d (positioned %v), want 64", err.Offset, err.Positioned)
	}
	if err.Value != 7 {
		t.Errorf("Value = %v, want 7", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "constant 7 of 3" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidVersion", func(t *testing.T) {
		err := InvalidVersion(9, 2)
		if err.Kind != KindInvalidVersion || err.Phase != PhaseParse {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Detail, "9") {
			t.Errorf("Detail = %q, should contain version", err.Detail)
		}
	})

	t.Run("UnexpectedEOF", func(t *testing.T) {
		err := UnexpectedEOF("prototype", 12, io.EOF)
		if err.Kind != KindUnexpectedEOF {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !errors.Is(err, io.EOF) {
			t.Error("should unwrap to io.EOF")
		}
	})

	t.Run("InvalidTag", func(t *testing.T) {
		err := InvalidTag(5, 42)
		if err.Kind != KindInvalidTag || err.Value != byte(42) {
			t.Errorf("got kind %v value %v", err.Kind, err.Value)
		}
	})

	t.Run("UnknownOpcode", func(t *testing.T) {
		err := UnknownOpcode(200)
		if err.Phase != PhaseDecode || err.Kind != KindUnknownOpcode {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		err := Truncated("get_global", 4, 8)
		if err.Kind != KindTruncated {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Detail, "get_global") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseLift, []string{"constant"}, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseLift, "table constant")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}

func TestPhasePredicates(t *testing.T) {
	format := fmt.Errorf("load: %w", InvalidTag(0, 9))
	decode := UnknownOpcode(0xff)
	gap := Unsupported(PhaseLift, "import constant")

	if !IsFormat(format) || IsDecode(format) || IsLiftGap(format) {
		t.Error("format error misclassified")
	}
	if !IsDecode(decode) || IsFormat(decode) {
		t.Error("decode error misclassified")
	}
	if !IsLiftGap(gap) || IsFormat(gap) {
		t.Error("lift gap misclassified")
	}
	if IsFormat(errors.New("plain")) {
		t.Error("plain error should not be a format error")
	}
}
