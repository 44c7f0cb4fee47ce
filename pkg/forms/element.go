package forms

// Kind identifies the processing family an element belongs to. File elements
// require a file-capable input type during specification compilation.
type Kind string

const (
	// KindInput is the default element kind covering regular scalar inputs.
	KindInput Kind = "input"
	// KindFile marks elements whose values are uploaded payloads rather than
	// plain scalars.
	KindFile Kind = "file"
)

// Option keys recognised on elements and fieldsets.
const (
	// OptionInputSpec holds a leaf validation-hint payload consumed by the
	// specification merger.
	OptionInputSpec = "input_spec"
	// OptionInputFilterSpec holds a fieldset-level hint payload covering the
	// fieldset's children.
	OptionInputFilterSpec = "input_filter_spec"
)

// Element is the leaf input unit of the tree.
type Element struct {
	name     string
	kind     Kind
	label    string
	priority int
	attrs    *AttributeMap
	options  map[string]any
	value    any
	hasValue bool
	owner    *Fieldset
}

// Parent returns the fieldset that owns this node, or nil for a detached
// node. Ownership is exclusive: a node re-parents only after an explicit
// Remove from its current fieldset.
func (e *Element) Parent() *Fieldset { return e.owner }

func (e *Element) setParent(parent *Fieldset) { e.owner = parent }

// ElementOption customises an element (or the element identity of a fieldset)
// at construction time.
type ElementOption func(*Element)

// WithLabel sets the human-facing label.
func WithLabel(label string) ElementOption {
	return func(e *Element) {
		e.label = label
	}
}

// WithKind overrides the element kind. The zero value defaults to KindInput.
func WithKind(kind Kind) ElementOption {
	return func(e *Element) {
		if kind != "" {
			e.kind = kind
		}
	}
}

// WithPriority assigns the ordering priority. Higher priorities traverse
// first when the parent fieldset is not preserving declaration order.
func WithPriority(priority int) ElementOption {
	return func(e *Element) {
		e.priority = priority
	}
}

// WithAttribute sets a single attribute, preserving insertion order.
func WithAttribute(key string, value any) ElementOption {
	return func(e *Element) {
		e.attrs.Set(key, value)
	}
}

// WithOption sets an arbitrary option value.
func WithOption(key string, value any) ElementOption {
	return func(e *Element) {
		e.options[key] = value
	}
}

// WithValue seeds the element's current value.
func WithValue(value any) ElementOption {
	return func(e *Element) {
		e.SetValue(value)
	}
}

// WithInputSpec attaches a leaf validation-hint payload. The payload uses the
// specification literal vocabulary (required, filters, validators, type,
// continue_if_empty, break_on_failure, allow_empty).
func WithInputSpec(spec map[string]any) ElementOption {
	return func(e *Element) {
		e.options[OptionInputSpec] = spec
	}
}

// NewElement constructs a named element. Names must be unique among siblings;
// uniqueness is enforced when the element is added to a fieldset.
func NewElement(name string, options ...ElementOption) *Element {
	e := &Element{
		name:    name,
		kind:    KindInput,
		attrs:   NewAttributeMap(),
		options: make(map[string]any),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Name returns the element name.
func (e *Element) Name() string { return e.name }

// Kind returns the element kind.
func (e *Element) Kind() Kind { return e.kind }

// Label returns the human-facing label.
func (e *Element) Label() string { return e.label }

// SetLabel replaces the label.
func (e *Element) SetLabel(label string) { e.label = label }

// Priority returns the ordering priority.
func (e *Element) Priority() int { return e.priority }

// SetPriority replaces the ordering priority. Reordering takes effect on the
// next traversal of the parent fieldset.
func (e *Element) SetPriority(priority int) { e.priority = priority }

// SetAttribute sets an attribute, preserving first-insertion order.
func (e *Element) SetAttribute(key string, value any) { e.attrs.Set(key, value) }

// Attribute reads an attribute.
func (e *Element) Attribute(key string) (any, bool) { return e.attrs.Get(key) }

// Attributes exposes the ordered attribute map.
func (e *Element) Attributes() *AttributeMap { return e.attrs }

// SetOption sets an option value.
func (e *Element) SetOption(key string, value any) {
	e.options[key] = value
}

// Option reads an option value.
func (e *Element) Option(key string) (any, bool) {
	v, ok := e.options[key]
	return v, ok
}

// Options returns the live option map.
func (e *Element) Options() map[string]any { return e.options }

// SetValue assigns the current value.
func (e *Element) SetValue(value any) {
	e.value = value
	e.hasValue = true
}

// Value returns the current value and whether one has been set.
func (e *Element) Value() (any, bool) { return e.value, e.hasValue }

// ClearValue removes the current value.
func (e *Element) ClearValue() {
	e.value = nil
	e.hasValue = false
}

// InputSpec implements InputProvider. It returns the hint payload attached via
// WithInputSpec or the OptionInputSpec option; a nil map means no hint.
func (e *Element) InputSpec() map[string]any {
	raw, ok := e.options[OptionInputSpec]
	if !ok {
		return nil
	}
	spec, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return spec
}
