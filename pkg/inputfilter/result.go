package inputfilter

// FieldResult is the per-field validation outcome.
type FieldResult struct {
	Valid    bool
	Messages []string
}

// Result aggregates one validation pass over the active group.
type Result struct {
	valid  bool
	fields map[string]FieldResult
	values map[string]any
}

// Valid reports whether every field in the active group validated.
func (r *Result) Valid() bool {
	if r == nil {
		return false
	}
	return r.valid
}

// Field returns the outcome for a dotted field path.
func (r *Result) Field(path string) (FieldResult, bool) {
	if r == nil {
		return FieldResult{}, false
	}
	res, ok := r.fields[path]
	return res, ok
}

// Messages returns all failure messages keyed by dotted field path.
func (r *Result) Messages() map[string][]string {
	if r == nil {
		return nil
	}
	out := make(map[string][]string)
	for path, field := range r.fields {
		if len(field.Messages) > 0 {
			out[path] = append([]string(nil), field.Messages...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Values returns the filtered values produced by the pass as a nested map.
// Skipped empty optional fields contribute nothing.
func (r *Result) Values() map[string]any {
	if r == nil {
		return nil
	}
	return unflatten(r.values)
}

// Value returns the filtered value for a dotted field path.
func (r *Result) Value(path string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[path]
	return v, ok
}
