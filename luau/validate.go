package luau

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"

	lerrors "github.com/wippyai/luau-lift/errors"
)

// Validate checks every cross reference of the module and reports all
// dangling ones at once. The lifter does not depend on it.
func (m *Module) Validate() error {
	var result *multierror.Error

	if m.Entry < 0 || m.Entry >= len(m.Functions) {
		result = multierror.Append(result, lerrors.OutOfBounds(lerrors.PhaseValidate, []string{"entry"}, m.Entry, len(m.Functions)))
	}

	for i := range m.Functions {
		for _, err := range m.validateFunction(i) {
			result = multierror.Append(result, err)
		}
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = validationFormat
	return result
}

func (m *Module) validateFunction(i int) []error {
	fn := &m.Functions[i]
	name := "function." + strconv.Itoa(i)
	var errs []error

	if !fn.Position.Covers(fn.Code) {
		errs = append(errs, lerrors.InvalidData(lerrors.PhaseValidate, []string{name, "code"},
			fmt.Sprintf("code %v outside prototype %v", fn.Code, fn.Position)))
	}

	if fn.DebugName != 0 && fn.DebugName > len(m.Strings) {
		errs = append(errs, lerrors.OutOfBounds(lerrors.PhaseValidate, []string{name, "debug_name"}, fn.DebugName, len(m.Strings)))
	}

	for j, ref := range fn.References {
		if ref >= len(m.Functions) {
			errs = append(errs, lerrors.OutOfBounds(lerrors.PhaseValidate, []string{name, "reference", strconv.Itoa(j)}, ref, len(m.Functions)))
		}
	}

	for j, v := range fn.Constants {
		path := []string{name, "constant", strconv.Itoa(j)}
		switch v.Kind {
		case KindString:
			if v.Index > len(m.Strings) {
				errs = append(errs, lerrors.OutOfBounds(lerrors.PhaseValidate, path, v.Index, len(m.Strings)))
			}
		case KindClosure:
			if v.Index >= len(m.Functions) {
				errs = append(errs, lerrors.OutOfBounds(lerrors.PhaseValidate, path, v.Index, len(m.Functions)))
			}
		case KindImport:
			for idx := range v.Import.All() {
				if idx >= len(fn.Constants) {
					errs = append(errs, lerrors.OutOfBounds(lerrors.PhaseValidate, append(path, "import"), idx, len(fn.Constants)))
				}
			}
		}
	}
	return errs
}

func validationFormat(errs []error) string {
	if len(errs) == 1 {
		return "validate: " + errs[0].Error()
	}
	s := strconv.Itoa(len(errs)) + " validation errors:"
	for _, err := range errs {
		s += "\n\t* " + err.Error()
	}
	return s
}
