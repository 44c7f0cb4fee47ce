package inputfilter

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/goliatone/go-forms/pkg/filters"
	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/validators"
)

// CompileOption customises specification compilation.
type CompileOption func(*compiler)

// WithFilterRegistry overrides the filter registry used to resolve named
// filter references. Defaults to the built-in registry.
func WithFilterRegistry(registry *filters.Registry) CompileOption {
	return func(c *compiler) {
		if registry != nil {
			c.filters = registry
		}
	}
}

// WithValidatorRegistry overrides the validator registry used to resolve
// named validator references. Defaults to the built-in registry.
func WithValidatorRegistry(registry *validators.Registry) CompileOption {
	return func(c *compiler) {
		if registry != nil {
			c.validators = registry
		}
	}
}

// WithDefaults supplies a baseline record merged underneath hint-derived and
// default records. Explicit records stay verbatim and are not touched.
func WithDefaults(defaults Spec) CompileOption {
	return func(c *compiler) {
		c.defaults = defaults
		c.hasDefaults = true
	}
}

type compiler struct {
	filters     *filters.Registry
	validators  *validators.Registry
	defaults    Spec
	hasDefaults bool
}

type kinder interface {
	Kind() forms.Kind
}

// Compile walks the tree depth-first (fieldset before its children) and
// produces the validation engine. Per leaf path the effective record is, in
// strict priority order: the explicit entry (used verbatim, including its
// type; re-compiling with an explicit entry replaces, never appends to,
// whatever a previous compilation resolved); the leaf's own hint; the
// enclosing fieldset's hint entry for that child; the default record. Hint
// and default records are shallow-merged over the WithDefaults baseline.
func Compile(root *forms.Fieldset, explicit Specification, opts ...CompileOption) (*InputFilter, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	c := &compiler{
		filters:    filters.Builtin(),
		validators: validators.Builtin(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}

	engine := &InputFilter{
		root:   root,
		inputs: make(map[string]*compiledInput),
	}
	if err := c.compileFieldset(root, "", explicit, nil, engine); err != nil {
		return nil, err
	}
	return engine, nil
}

func (c *compiler) compileFieldset(fs *forms.Fieldset, prefix string, explicit, inherited Specification, engine *InputFilter) error {
	containerHint, err := FromMap(fs.InputFilterSpec())
	if err != nil {
		return fmt.Errorf("inputfilter: fieldset %q hint: %w", fs.Name(), err)
	}

	for _, child := range fs.Children() {
		name := child.Name()
		path := joinPath(prefix, name)

		explicitEntry, hasExplicit := explicit[name]
		hintEntry, hasHint := containerHint[name]
		if !hasHint {
			hintEntry, hasHint = inherited[name]
		}

		if nested, ok := child.(*forms.Fieldset); ok {
			var nestedExplicit, nestedInherited Specification
			if hasExplicit {
				nestedExplicit = explicitEntry.Nested
			}
			if hasHint {
				nestedInherited = hintEntry.Nested
			}
			if err := c.compileFieldset(nested, path, nestedExplicit, nestedInherited, engine); err != nil {
				return err
			}
			continue
		}

		spec, err := c.resolveSpec(path, child, explicitEntry, hasExplicit, hintEntry, hasHint)
		if err != nil {
			return err
		}
		if err := checkTypeCompatibility(path, spec, childKind(child)); err != nil {
			return err
		}

		input := &compiledInput{path: path, spec: spec}
		if input.filters, err = c.resolveFilters(path, spec.Filters); err != nil {
			return err
		}
		if input.validators, err = c.resolveValidators(path, spec.Validators); err != nil {
			return err
		}
		engine.inputs[path] = input
		engine.order = append(engine.order, path)
	}
	return nil
}

func (c *compiler) resolveSpec(path string, child forms.Node, explicitEntry Entry, hasExplicit bool, hintEntry Entry, hasHint bool) (Spec, error) {
	if hasExplicit && explicitEntry.Spec != nil {
		return *explicitEntry.Spec, nil
	}

	var spec Spec
	resolved := false
	if provider, ok := child.(forms.InputProvider); ok {
		if payload := provider.InputSpec(); payload != nil {
			parsed, err := specFromLiteral(payload)
			if err != nil {
				return Spec{}, fmt.Errorf("inputfilter: field %q hint: %w", path, err)
			}
			spec = *parsed
			resolved = true
		}
	}
	if !resolved && hasHint && hintEntry.Spec != nil {
		spec = *hintEntry.Spec
	}

	if c.hasDefaults {
		if err := mergo.Merge(&spec, c.defaults); err != nil {
			return Spec{}, fmt.Errorf("inputfilter: field %q defaults: %w", path, err)
		}
	}
	return spec, nil
}

func (c *compiler) resolveFilters(path string, refs []FilterRef) ([]filters.Filter, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	chain := make([]filters.Filter, 0, len(refs))
	for _, ref := range refs {
		if ref.Filter != nil {
			chain = append(chain, ref.Filter)
			continue
		}
		filter, err := c.filters.Build(ref.Name, ref.Options)
		if err != nil {
			return nil, fmt.Errorf("inputfilter: field %q: %w", path, err)
		}
		chain = append(chain, filter)
	}
	return chain, nil
}

func (c *compiler) resolveValidators(path string, refs []ValidatorRef) ([]validators.Validator, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	chain := make([]validators.Validator, 0, len(refs))
	for _, ref := range refs {
		if ref.Validator != nil {
			chain = append(chain, ref.Validator)
			continue
		}
		validator, err := c.validators.Build(ref.Name, ref.Options)
		if err != nil {
			return nil, fmt.Errorf("inputfilter: field %q: %w", path, err)
		}
		chain = append(chain, validator)
	}
	return chain, nil
}

func childKind(child forms.Node) forms.Kind {
	if k, ok := child.(kinder); ok {
		return k.Kind()
	}
	return forms.KindInput
}

func checkTypeCompatibility(path string, spec Spec, kind forms.Kind) error {
	switch spec.Type {
	case TypeDefault, TypeInput:
		if kind == forms.KindFile {
			return &TypeMismatchError{Field: path, Type: spec.Type, Kind: kind}
		}
	case TypeFile:
		if kind != forms.KindFile {
			return &TypeMismatchError{Field: path, Type: spec.Type, Kind: kind}
		}
	default:
		return &TypeMismatchError{Field: path, Type: spec.Type, Kind: kind}
	}
	return nil
}
