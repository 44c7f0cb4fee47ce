package forms

import "sort"

// Node is the contract shared by Elements and Fieldsets inside a tree.
type Node interface {
	Name() string
	Label() string
	Priority() int
	Option(key string) (any, bool)
	SetOption(key string, value any)
}

// InputProvider is the leaf hint capability: nodes exposing a validation-hint
// payload consumed during specification compilation. A nil return means the
// node carries no hint.
type InputProvider interface {
	InputSpec() map[string]any
}

// InputFilterProvider is the fieldset hint capability: a nested specification
// literal covering the fieldset's children.
type InputFilterProvider interface {
	InputFilterSpec() map[string]any
}

type childEntry struct {
	node Node
	pos  int
}

// Fieldset is a named collection of Elements and nested Fieldsets. It carries
// the same identity surface as an Element (name, label, priority, options)
// and exclusively owns its children: the tree is strict, with no shared
// nodes and no cycles.
type Fieldset struct {
	Element

	children      []childEntry
	index         map[string]int
	preserveOrder bool
	nextPos       int
}

// NewFieldset constructs a named fieldset.
func NewFieldset(name string, options ...ElementOption) *Fieldset {
	f := &Fieldset{
		Element: *NewElement(name, options...),
		index:   make(map[string]int),
	}
	return f
}

// SetPreserveOrder switches between declaration-order traversal (true) and
// priority-order traversal (false, the default).
func (f *Fieldset) SetPreserveOrder(preserve bool) { f.preserveOrder = preserve }

// PreservesOrder reports the active traversal mode.
func (f *Fieldset) PreservesOrder() bool { return f.preserveOrder }

// attachable is the ownership surface of tree-managed nodes. Elements and
// fieldsets satisfy it through their embedded element identity.
type attachable interface {
	Parent() *Fieldset
	setParent(*Fieldset)
}

// Add appends a child node. A sibling name collision returns
// *DuplicateNameError, a node already owned by a fieldset returns
// *AlreadyAttachedError, and adding a fieldset into its own subtree returns
// ErrCycle; in every case the tree is unchanged. Ownership is exclusive:
// detach a node with Remove before attaching it elsewhere.
func (f *Fieldset) Add(child Node) error {
	if child == nil {
		return ErrNilChild
	}
	name := child.Name()
	if _, exists := f.index[name]; exists {
		return &DuplicateNameError{Fieldset: f.Name(), Name: name}
	}
	att, _ := child.(attachable)
	if att != nil {
		if owner := att.Parent(); owner != nil {
			return &AlreadyAttachedError{Node: name, Owner: owner.Name()}
		}
	}
	if nested, ok := child.(*Fieldset); ok {
		if nested == f || nested.contains(f) {
			return ErrCycle
		}
	}
	f.index[name] = len(f.children)
	f.children = append(f.children, childEntry{node: child, pos: f.nextPos})
	f.nextPos++
	if att != nil {
		att.setParent(f)
	}
	return nil
}

// Remove deletes the named child and releases its ownership. Removing an
// unknown name is a no-op returning false.
func (f *Fieldset) Remove(name string) bool {
	i, ok := f.index[name]
	if !ok {
		return false
	}
	if att, ok := f.children[i].node.(attachable); ok {
		att.setParent(nil)
	}
	f.children = append(f.children[:i], f.children[i+1:]...)
	delete(f.index, name)
	for n, idx := range f.index {
		if idx > i {
			f.index[n] = idx - 1
		}
	}
	return true
}

// Get returns the named child.
func (f *Fieldset) Get(name string) (Node, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.children[i].node, true
}

// Has reports whether a child with the given name exists.
func (f *Fieldset) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Count returns the number of direct children.
func (f *Fieldset) Count() int { return len(f.children) }

// Children returns the direct children in traversal order: declaration order
// when preserve-order is set, otherwise priority descending with a stable
// declaration-order tie-break.
func (f *Fieldset) Children() []Node {
	entries := make([]childEntry, len(f.children))
	copy(entries, f.children)
	if !f.preserveOrder {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].node.Priority() != entries[j].node.Priority() {
				return entries[i].node.Priority() > entries[j].node.Priority()
			}
			return entries[i].pos < entries[j].pos
		})
	}
	out := make([]Node, len(entries))
	for i, entry := range entries {
		out[i] = entry.node
	}
	return out
}

// InputFilterSpec implements InputFilterProvider. It returns the nested hint
// payload attached via the OptionInputFilterSpec option; nil means no hint.
func (f *Fieldset) InputFilterSpec() map[string]any {
	raw, ok := f.Option(OptionInputFilterSpec)
	if !ok {
		return nil
	}
	spec, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return spec
}

// InputSpec overrides the embedded element hint so fieldsets only expose the
// container-level capability.
func (f *Fieldset) InputSpec() map[string]any { return nil }

func (f *Fieldset) contains(target *Fieldset) bool {
	for _, entry := range f.children {
		nested, ok := entry.node.(*Fieldset)
		if !ok {
			continue
		}
		if nested == target || nested.contains(target) {
			return true
		}
	}
	return false
}
