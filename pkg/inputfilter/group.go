package inputfilter

import (
	"fmt"
	"strings"
)

// SetValidationGroup restricts validation to a subset of the compiled paths.
// The selector is either a flat list of names ([]string) or a nested map
// mirroring the tree (map[string]any whose values are nil, lists, or nested
// maps). Selecting a container name selects its whole subtree. A selector
// referencing an unknown path returns *UnknownFieldError and leaves the
// active group unchanged. The group limits which fields are validated and
// returned only; every compiled field stays compiled.
func (f *InputFilter) SetValidationGroup(selector any) error {
	paths, err := expandSelector("", selector)
	if err != nil {
		return err
	}
	group := make(map[string]struct{})
	for _, path := range paths {
		matched := false
		for _, compiled := range f.order {
			if compiled == path || strings.HasPrefix(compiled, path+".") {
				group[compiled] = struct{}{}
				matched = true
			}
		}
		if !matched {
			return &UnknownFieldError{Path: path}
		}
	}
	f.group = group
	f.result = nil
	return nil
}

// SetValidateAll clears any active validation group; the next pass covers
// the full field set again.
func (f *InputFilter) SetValidateAll() {
	f.group = nil
	f.result = nil
}

// ValidationGroup returns the currently selected paths, nil when validating
// all.
func (f *InputFilter) ValidationGroup() []string {
	if f.group == nil {
		return nil
	}
	out := make([]string, 0, len(f.group))
	for _, path := range f.order {
		if _, ok := f.group[path]; ok {
			out = append(out, path)
		}
	}
	return out
}

func expandSelector(prefix string, selector any) ([]string, error) {
	switch v := selector.(type) {
	case nil:
		if prefix == "" {
			return nil, fmt.Errorf("inputfilter: validation group selector is required")
		}
		return []string{prefix}, nil
	case string:
		return []string{joinPath(prefix, v)}, nil
	case []string:
		out := make([]string, 0, len(v))
		for _, name := range v {
			out = append(out, joinPath(prefix, name))
		}
		return out, nil
	case []any:
		var out []string
		for _, item := range v {
			expanded, err := expandSelector(prefix, item)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
		return out, nil
	case map[string]any:
		var out []string
		for name, nested := range v {
			expanded, err := expandSelector(joinPath(prefix, name), nested)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("inputfilter: unsupported validation group selector type %T", selector)
	}
}
