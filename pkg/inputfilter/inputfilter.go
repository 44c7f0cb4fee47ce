package inputfilter

import (
	"github.com/goliatone/go-forms/pkg/filters"
	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/validators"
)

type compiledInput struct {
	path       string
	spec       Spec
	filters    []filters.Filter
	validators []validators.Validator
}

// InputFilter is the compiled validation engine for one tree. It is owned by
// the tree it was compiled from and must be recompiled after the tree
// changes.
type InputFilter struct {
	root   *forms.Fieldset
	inputs map[string]*compiledInput
	order  []string

	data    map[string]any
	rawFlat map[string]any
	group   map[string]struct{}
	result  *Result
}

// Root returns the fieldset the engine was compiled from.
func (f *InputFilter) Root() *forms.Fieldset { return f.root }

// Paths returns every compiled field path in depth-first tree order.
func (f *InputFilter) Paths() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Has reports whether a dotted path was compiled.
func (f *InputFilter) Has(path string) bool {
	_, ok := f.inputs[path]
	return ok
}

// SetData supplies raw input as a nested map mirroring the tree. It resets
// any previous validation result; raw values are kept verbatim.
func (f *InputFilter) SetData(data map[string]any) {
	f.data = data
	f.rawFlat = make(map[string]any)
	flatten("", data, f.rawFlat)
	f.result = nil
}

// ClearData removes previously supplied input.
func (f *InputFilter) ClearData() {
	f.data = nil
	f.rawFlat = nil
	f.result = nil
}

// HasData reports whether input data has been supplied.
func (f *InputFilter) HasData() bool { return f.data != nil }

// Validate runs filter chains then validator chains over the active group.
// Data-level failures land in the Result; the returned error covers
// configuration problems only (such as missing data).
func (f *InputFilter) Validate() (*Result, error) {
	if f.data == nil {
		return nil, ErrNoData
	}

	result := &Result{
		valid:  true,
		fields: make(map[string]FieldResult),
		values: make(map[string]any),
	}

	for _, path := range f.order {
		if f.group != nil {
			if _, selected := f.group[path]; !selected {
				continue
			}
		}
		input := f.inputs[path]
		raw, present := f.rawFlat[path]

		if skip, field := f.evaluateEmpty(input, raw, present); skip {
			if field != nil {
				result.fields[path] = *field
				if !field.Valid {
					result.valid = false
				}
			}
			continue
		}

		value := raw
		for _, filter := range input.filters {
			value = filter.Process(value)
		}

		field := FieldResult{Valid: true}
		for _, validator := range input.validators {
			messages := validator.Validate(value)
			if len(messages) == 0 {
				continue
			}
			field.Valid = false
			field.Messages = append(field.Messages, messages...)
			if input.spec.BreakOnFailure {
				break
			}
		}

		result.fields[path] = field
		if field.Valid {
			result.values[path] = value
		} else {
			result.valid = false
		}
	}

	f.result = result
	return result, nil
}

// evaluateEmpty applies the required/empty rules ahead of the chains. It
// reports whether processing for the field stops here and, when it does, the
// field outcome (nil means the field is skipped silently).
func (f *InputFilter) evaluateEmpty(input *compiledInput, raw any, present bool) (bool, *FieldResult) {
	empty := !present || raw == nil || raw == ""
	if !empty {
		return false, nil
	}
	if input.spec.ContinueIfEmpty {
		return false, nil
	}
	if input.spec.AllowEmpty || !input.spec.Required {
		return true, nil
	}
	return true, &FieldResult{
		Messages: []string{"Value is required and can't be empty"},
	}
}

// IsValid validates (if needed) and reports the aggregate outcome.
func (f *InputFilter) IsValid() bool {
	if f.result == nil {
		if _, err := f.Validate(); err != nil {
			return false
		}
	}
	return f.result.Valid()
}

// Result returns the last validation result, if any.
func (f *InputFilter) Result() *Result { return f.result }

// Values returns the filtered values of the last validation pass as a nested
// map.
func (f *InputFilter) Values() map[string]any { return f.result.Values() }

// RawValues returns the raw (pre-filter) input as a nested map. Raw values
// are never discarded by validation.
func (f *InputFilter) RawValues() map[string]any {
	if f.rawFlat == nil {
		return nil
	}
	return unflatten(f.rawFlat)
}

// RawValue returns the raw value supplied for a dotted field path.
func (f *InputFilter) RawValue(path string) (any, bool) {
	v, ok := f.rawFlat[path]
	return v, ok
}

// Value returns the filtered value for a dotted field path from the last
// validation pass.
func (f *InputFilter) Value(path string) (any, bool) {
	return f.result.Value(path)
}

// Messages returns the failure messages of the last validation pass.
func (f *InputFilter) Messages() map[string][]string { return f.result.Messages() }
