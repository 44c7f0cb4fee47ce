package binder

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/inputfilter"
)

// BindMode controls whether hydration runs automatically after a successful
// validation.
type BindMode int

const (
	// BindAuto hydrates the bound object as part of a successful Validate.
	BindAuto BindMode = iota
	// BindManual skips automatic hydration; callers invoke Hydrate
	// themselves.
	BindManual
)

// DataSource records where the validation input of the current cycle came
// from.
type DataSource int

const (
	// DataRaw means input was supplied explicitly through SetData.
	DataRaw DataSource = iota
	// DataExtracted means input was extracted from the bound object.
	DataExtracted
)

// GetType selects the GetData representation.
type GetType int

const (
	// GetObject returns the bound domain object (after hydration).
	GetObject GetType = iota
	// GetFlatMap returns the validated values as a plain nested map.
	GetFlatMap
)

// InputFilterProvider is the object-level override capability: a bound
// object carrying its own validation engine bypasses the composed one.
type InputFilterProvider interface {
	InputFilter() *inputfilter.InputFilter
}

// ErrNotBound is returned when an operation requires a bound object.
var ErrNotBound = errors.New("binder: no object bound")

// ErrNotValidated is returned when hydration is requested before a
// successful validation pass.
var ErrNotValidated = errors.New("binder: validation has not produced values yet")

// Option customises a Binding.
type Option func(*Binding)

// WithHydrator overrides the extraction/population protocol. Defaults to
// ReflectHydrator.
func WithHydrator(h Hydrator) Option {
	return func(b *Binding) {
		if h != nil {
			b.hydrator = h
		}
	}
}

// Binding drives the extract → validate → populate lifecycle for one tree
// and one (optional) domain object.
type Binding struct {
	root     *forms.Fieldset
	engine   *inputfilter.InputFilter
	active   *inputfilter.InputFilter
	hydrator Hydrator

	bound  any
	mode   BindMode
	source DataSource
	hasRaw bool
}

// New constructs a Binding around a tree and its compiled engine.
func New(root *forms.Fieldset, engine *inputfilter.InputFilter, options ...Option) (*Binding, error) {
	if root == nil {
		return nil, errors.New("binder: root fieldset is required")
	}
	if engine == nil {
		return nil, errors.New("binder: compiled input filter is required")
	}
	b := &Binding{
		root:     root,
		engine:   engine,
		active:   engine,
		hydrator: ReflectHydrator{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b, nil
}

// Bind attaches a domain object. Its values are extracted immediately,
// seeding element values and validation input. An object exposing its own
// input filter replaces the composed engine for this binding.
func (b *Binding) Bind(obj any, mode BindMode) error {
	if obj == nil {
		return errors.New("binder: bind object is required")
	}

	b.active = b.engine
	if provider, ok := obj.(InputFilterProvider); ok {
		if own := provider.InputFilter(); own != nil {
			b.active = own
		}
	}

	b.bound = obj
	b.mode = mode
	b.hasRaw = false
	return b.extractIntoTree()
}

// Unbind detaches the bound object and restores the composed engine. The
// binding context is cleared only here, never implicitly.
func (b *Binding) Unbind() {
	b.bound = nil
	b.mode = BindAuto
	b.source = DataRaw
	b.hasRaw = false
	b.active.ClearData()
	b.active = b.engine
	b.engine.ClearData()
}

// Bound returns the currently bound object, if any.
func (b *Binding) Bound() (any, bool) { return b.bound, b.bound != nil }

// Mode returns the active bind mode.
func (b *Binding) Mode() BindMode { return b.mode }

// Source reports where the current validation input came from.
func (b *Binding) Source() DataSource { return b.source }

// SetData supplies raw input explicitly, taking precedence over extraction
// for the next validation pass.
func (b *Binding) SetData(data map[string]any) {
	b.active.SetData(data)
	b.source = DataRaw
	b.hasRaw = true
}

// Validate runs the active engine. Without explicit data the bound object is
// re-extracted first. In BindAuto a successful pass hydrates the bound
// object.
func (b *Binding) Validate() (*inputfilter.Result, error) {
	if !b.hasRaw {
		if b.bound == nil {
			return nil, ErrNotBound
		}
		if err := b.extractIntoTree(); err != nil {
			return nil, err
		}
	}

	result, err := b.active.Validate()
	if err != nil {
		return nil, err
	}
	if result.Valid() && b.bound != nil && b.mode == BindAuto {
		if err := b.Hydrate(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// IsValid validates and reports the aggregate outcome.
func (b *Binding) IsValid() bool {
	result, err := b.Validate()
	if err != nil {
		return false
	}
	return result.Valid()
}

// Hydrate populates the bound object from the validated values. BindManual
// callers invoke it explicitly after a successful Validate.
func (b *Binding) Hydrate() error {
	if b.bound == nil {
		return ErrNotBound
	}
	result := b.active.Result()
	if result == nil || !result.Valid() {
		return ErrNotValidated
	}
	return b.hydrateSubtree(b.root, result.Values(), b.bound)
}

// GetData returns either the bound object (GetObject, post hydration) or the
// validated values as a nested map (GetFlatMap, regardless of binding
// state).
func (b *Binding) GetData(mode GetType) (any, error) {
	switch mode {
	case GetObject:
		if b.bound == nil {
			return nil, ErrNotBound
		}
		return b.bound, nil
	case GetFlatMap:
		result := b.active.Result()
		if result == nil {
			return nil, ErrNotValidated
		}
		return result.Values(), nil
	default:
		return nil, fmt.Errorf("binder: unsupported get mode %d", mode)
	}
}

func (b *Binding) extractIntoTree() error {
	data, err := b.extractSubtree(b.root, b.bound)
	if err != nil {
		return err
	}
	seedValues(b.root, data)
	b.active.SetData(data)
	b.source = DataExtracted
	return nil
}

// extractSubtree applies the recursion rule: the hydrator extracts obj, then
// for each child fieldset whose extracted sub-value is itself extractable
// the walk recurses with that sub-object. Anything else stays as the
// parent-level extraction produced it.
func (b *Binding) extractSubtree(fs *forms.Fieldset, obj any) (map[string]any, error) {
	data, err := b.hydrator.Extract(obj)
	if err != nil {
		return nil, fmt.Errorf("binder: extract %q: %w", fs.Name(), err)
	}

	for _, child := range fs.Children() {
		nested, ok := child.(*forms.Fieldset)
		if !ok {
			continue
		}
		sub, present := data[nested.Name()]
		if !present || !b.canExtract(sub) {
			continue
		}
		subData, err := b.extractSubtree(nested, sub)
		if err != nil {
			return nil, err
		}
		data[nested.Name()] = subData
	}
	return data, nil
}

// hydrateSubtree mirrors extraction in reverse: nested validated maps
// populate extractable sub-objects directly, the remainder is delegated to
// the parent-level hydrator.
func (b *Binding) hydrateSubtree(fs *forms.Fieldset, values map[string]any, obj any) error {
	current, err := b.hydrator.Extract(obj)
	if err != nil {
		return fmt.Errorf("binder: hydrate %q: %w", fs.Name(), err)
	}

	remaining := make(map[string]any, len(values))
	for key, value := range values {
		remaining[key] = value
	}

	for _, child := range fs.Children() {
		nested, ok := child.(*forms.Fieldset)
		if !ok {
			continue
		}
		name := nested.Name()
		nestedValues, ok := remaining[name].(map[string]any)
		if !ok {
			continue
		}
		sub, present := current[name]
		if !present || !b.canExtract(sub) {
			continue
		}
		if subPtr, ok := pointerTo(sub); ok {
			if err := b.hydrateSubtree(nested, nestedValues, subPtr); err != nil {
				return err
			}
			delete(remaining, name)
		}
	}

	if len(remaining) == 0 {
		return nil
	}
	if err := b.hydrator.Hydrate(remaining, obj); err != nil {
		return fmt.Errorf("binder: hydrate %q: %w", fs.Name(), err)
	}
	return nil
}

// pointerTo reports whether sub can be populated in place. Struct copies
// cannot: writing to them would not reach the bound object, so their subtree
// stays with the parent-level hydrator.
func pointerTo(sub any) (any, bool) {
	if sub == nil {
		return nil, false
	}
	if v := reflectPointer(sub); v != nil {
		return v, true
	}
	return nil, false
}

func (b *Binding) canExtract(obj any) bool {
	if checker, ok := b.hydrator.(ExtractChecker); ok {
		return checker.CanExtract(obj)
	}
	return false
}

func seedValues(fs *forms.Fieldset, data map[string]any) {
	for _, child := range fs.Children() {
		value, ok := data[child.Name()]
		if !ok {
			continue
		}
		switch node := child.(type) {
		case *forms.Fieldset:
			if nested, ok := value.(map[string]any); ok {
				seedValues(node, nested)
			}
		case *forms.Element:
			node.SetValue(value)
		}
	}
}
