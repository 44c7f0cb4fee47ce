package inputfilter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-forms/pkg/filters"
	"github.com/goliatone/go-forms/pkg/validators"
)

// Type selects the processing unit compiled for a field.
type Type string

const (
	// TypeDefault lets compilation pick the regular input processing.
	TypeDefault Type = ""
	// TypeInput is the regular scalar input processing unit.
	TypeInput Type = "input"
	// TypeFile is the upload-capable processing unit required by file
	// elements.
	TypeFile Type = "file"
)

// FilterRef references a filter by pre-built instance or by registry name
// plus options. A non-nil Filter takes precedence over the name.
type FilterRef struct {
	Name    string
	Options map[string]any
	Filter  filters.Filter
}

// ValidatorRef references a validator by pre-built instance or by registry
// name plus options. A non-nil Validator takes precedence over the name.
type ValidatorRef struct {
	Name      string
	Options   map[string]any
	Validator validators.Validator
}

// Spec is the per-field input record.
type Spec struct {
	Required        bool
	Filters         []FilterRef
	Validators      []ValidatorRef
	Type            Type
	ContinueIfEmpty bool
	BreakOnFailure  bool
	AllowEmpty      bool
}

// Entry is one specification node: either a leaf record or a nested
// specification covering a fieldset. Exactly one side is set.
type Entry struct {
	Spec   *Spec
	Nested Specification
}

// Field wraps a leaf record into an Entry.
func Field(spec Spec) Entry { return Entry{Spec: &spec} }

// Group wraps a nested specification into an Entry.
func Group(nested Specification) Entry { return Entry{Nested: nested} }

// Specification maps field and fieldset names to entries.
type Specification map[string]Entry

// Leaf record keys recognised in specification literals.
var leafKeys = []string{
	"required", "filters", "validators", "type",
	"continue_if_empty", "break_on_failure", "allow_empty",
}

// FromYAML parses a YAML specification literal.
func FromYAML(raw []byte) (Specification, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("inputfilter: parse yaml specification: %w", err)
	}
	return FromMap(doc)
}

// FromMap converts a specification literal into a typed Specification. A map
// containing any leaf record key is treated as a leaf record; any other map
// nests.
func FromMap(literal map[string]any) (Specification, error) {
	if len(literal) == 0 {
		return nil, nil
	}
	spec := make(Specification, len(literal))
	for name, raw := range literal {
		entry, err := entryFromLiteral(raw)
		if err != nil {
			return nil, fmt.Errorf("inputfilter: field %q: %w", name, err)
		}
		spec[name] = entry
	}
	return spec, nil
}

func entryFromLiteral(raw any) (Entry, error) {
	switch v := raw.(type) {
	case Entry:
		return v, nil
	case Spec:
		return Field(v), nil
	case *Spec:
		return Entry{Spec: v}, nil
	case Specification:
		return Group(v), nil
	case map[string]any:
		if isLeafLiteral(v) {
			spec, err := specFromLiteral(v)
			if err != nil {
				return Entry{}, err
			}
			return Entry{Spec: spec}, nil
		}
		nested, err := FromMap(v)
		if err != nil {
			return Entry{}, err
		}
		return Group(nested), nil
	default:
		return Entry{}, fmt.Errorf("unsupported literal type %T", raw)
	}
}

func isLeafLiteral(literal map[string]any) bool {
	for _, key := range leafKeys {
		if _, ok := literal[key]; ok {
			return true
		}
	}
	return false
}

func specFromLiteral(literal map[string]any) (*Spec, error) {
	spec := &Spec{}
	var err error
	if spec.Required, err = boolKey(literal, "required"); err != nil {
		return nil, err
	}
	if spec.ContinueIfEmpty, err = boolKey(literal, "continue_if_empty"); err != nil {
		return nil, err
	}
	if spec.BreakOnFailure, err = boolKey(literal, "break_on_failure"); err != nil {
		return nil, err
	}
	if spec.AllowEmpty, err = boolKey(literal, "allow_empty"); err != nil {
		return nil, err
	}
	if raw, ok := literal["type"]; ok {
		s, isStr := raw.(string)
		if !isStr {
			return nil, fmt.Errorf("key type: expected string, got %T", raw)
		}
		spec.Type = Type(s)
	}
	if raw, ok := literal["filters"]; ok {
		refs, err := filterRefsFromLiteral(raw)
		if err != nil {
			return nil, err
		}
		spec.Filters = refs
	}
	if raw, ok := literal["validators"]; ok {
		refs, err := validatorRefsFromLiteral(raw)
		if err != nil {
			return nil, err
		}
		spec.Validators = refs
	}
	return spec, nil
}

func boolKey(literal map[string]any, key string) (bool, error) {
	raw, ok := literal[key]
	if !ok {
		return false, nil
	}
	b, isBool := raw.(bool)
	if !isBool {
		return false, fmt.Errorf("key %s: expected bool, got %T", key, raw)
	}
	return b, nil
}

func filterRefsFromLiteral(raw any) ([]FilterRef, error) {
	items, err := refItems(raw, "filters")
	if err != nil {
		return nil, err
	}
	refs := make([]FilterRef, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case FilterRef:
			refs = append(refs, v)
		case filters.Filter:
			refs = append(refs, FilterRef{Filter: v})
		case string:
			refs = append(refs, FilterRef{Name: v})
		case map[string]any:
			name, options, err := namedRef(v)
			if err != nil {
				return nil, fmt.Errorf("filters: %w", err)
			}
			refs = append(refs, FilterRef{Name: name, Options: options})
		default:
			return nil, fmt.Errorf("filters: unsupported reference type %T", item)
		}
	}
	return refs, nil
}

func validatorRefsFromLiteral(raw any) ([]ValidatorRef, error) {
	items, err := refItems(raw, "validators")
	if err != nil {
		return nil, err
	}
	refs := make([]ValidatorRef, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case ValidatorRef:
			refs = append(refs, v)
		case validators.Validator:
			refs = append(refs, ValidatorRef{Validator: v})
		case string:
			refs = append(refs, ValidatorRef{Name: v})
		case map[string]any:
			name, options, err := namedRef(v)
			if err != nil {
				return nil, fmt.Errorf("validators: %w", err)
			}
			refs = append(refs, ValidatorRef{Name: name, Options: options})
		default:
			return nil, fmt.Errorf("validators: unsupported reference type %T", item)
		}
	}
	return refs, nil
}

func refItems(raw any, key string) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, nil
	case []map[string]any:
		items := make([]any, len(v))
		for i, m := range v {
			items[i] = m
		}
		return items, nil
	default:
		return nil, fmt.Errorf("key %s: expected list, got %T", key, raw)
	}
}

func namedRef(literal map[string]any) (string, map[string]any, error) {
	rawName, ok := literal["name"]
	if !ok {
		return "", nil, fmt.Errorf("reference record requires a name key")
	}
	name, isStr := rawName.(string)
	if !isStr || name == "" {
		return "", nil, fmt.Errorf("reference name must be a non-empty string")
	}
	var options map[string]any
	if rawOpts, ok := literal["options"]; ok {
		m, isMap := rawOpts.(map[string]any)
		if !isMap {
			return "", nil, fmt.Errorf("reference %q options must be a map", name)
		}
		options = m
	}
	return name, options, nil
}
