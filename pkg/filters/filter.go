// Package filters defines the opaque value-transformation units applied ahead
// of validation. Filters are pure: Process receives a raw value and returns
// the transformed value, never an error. Unknown input types pass through
// untouched.
package filters

// Filter transforms a raw field value into its filtered form.
type Filter interface {
	Name() string
	Process(value any) any
}

// Factory builds a filter instance from an options payload. Options use the
// specification literal vocabulary (string keys, scalar values).
type Factory func(options map[string]any) (Filter, error)

// Func adapts a plain function into a named Filter.
type Func struct {
	FilterName string
	Fn         func(value any) any
}

// Name returns the configured filter name.
func (f Func) Name() string { return f.FilterName }

// Process applies the wrapped function.
func (f Func) Process(value any) any {
	if f.Fn == nil {
		return value
	}
	return f.Fn(value)
}
