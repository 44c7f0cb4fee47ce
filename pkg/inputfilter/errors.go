package inputfilter

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-forms/pkg/forms"
)

// ErrNoData is returned by Validate when no input data has been supplied.
var ErrNoData = errors.New("inputfilter: no data set, call SetData before Validate")

// ErrNilRoot is returned by Compile when the root fieldset is missing.
var ErrNilRoot = errors.New("inputfilter: root fieldset is required")

// TypeMismatchError reports a processing-unit type incompatible with the
// element kind it was compiled for. Compilation stops at the first mismatch.
type TypeMismatchError struct {
	Field string
	Type  Type
	Kind  forms.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("inputfilter: field %q: input type %q is incompatible with element kind %q", e.Field, e.Type, e.Kind)
}

// UnknownFieldError reports a validation-group selector referencing a path
// absent from the compiled specification.
type UnknownFieldError struct {
	Path string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("inputfilter: validation group references unknown field %q", e.Path)
}
