// Package validators defines the opaque validity-check units applied after
// filtering. A validator returns the ordered list of failure messages for a
// value; an empty list means the value is valid. Data-level failures are
// always messages, never Go errors.
package validators

// Validator checks a filtered field value.
type Validator interface {
	Name() string
	Validate(value any) []string
}

// Factory builds a validator instance from an options payload.
type Factory func(options map[string]any) (Validator, error)

// Func adapts a plain function into a named Validator.
type Func struct {
	ValidatorName string
	Fn            func(value any) []string
}

// Name returns the configured validator name.
func (f Func) Name() string { return f.ValidatorName }

// Validate applies the wrapped function.
func (f Func) Validate(value any) []string {
	if f.Fn == nil {
		return nil
	}
	return f.Fn(value)
}
