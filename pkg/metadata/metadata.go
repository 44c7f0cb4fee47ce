// Package metadata defines the structural-metadata description the
// reflective builder consumes. The description is plain data, decoupled from
// any specific reflection API: readers translate a subject (a live struct
// type, a source file) into a Class, and the builder turns a Class into a
// forms tree. Exactly two reader implementations exist (the legacy
// doc-comment reader and the struct-tag reader), selected by variant name
// through the builder factory.
package metadata

import "github.com/goliatone/go-forms/pkg/forms"

// MemberKind classifies a declared class member.
type MemberKind string

const (
	// MemberElement produces a leaf element.
	MemberElement MemberKind = "element"
	// MemberFieldset produces a nested fieldset from a class reference.
	MemberFieldset MemberKind = "fieldset"
	// MemberCollection produces a repeatable fieldset from a class or
	// element reference.
	MemberCollection MemberKind = "collection"
)

// Class describes one domain class carrying form metadata.
type Class struct {
	// Name is the class identifier; it becomes the fieldset name when the
	// class nests inside another.
	Name string
	// Options carries class-level build directives.
	Options ClassOptions
	// Members lists the declared members in declaration order.
	Members []Member
}

// ClassOptions are class-level directives.
type ClassOptions struct {
	// Label optionally overrides the derived fieldset label.
	Label string
}

// Member describes one declared class member carrying element or fieldset
// metadata.
type Member struct {
	Name    string
	Kind    MemberKind
	Type    string
	Options MemberOptions
	// Class is set for fieldset and collection members referencing another
	// class.
	Class *Class
}

// MemberOptions are the per-member options copied onto the produced node.
type MemberOptions struct {
	Label    string
	Priority int
	Required bool
	// ElementKind selects the forms processing family; zero means
	// forms.KindInput.
	ElementKind forms.Kind
	// Attributes are copied onto the produced element in declaration order.
	Attributes []Attribute
	// InputSpec is the validation-hint payload attached to the produced
	// node, using the specification literal vocabulary.
	InputSpec map[string]any
}

// Attribute is one ordered attribute pair.
type Attribute struct {
	Key   string
	Value any
}

// Reader translates a subject into a Class description.
type Reader interface {
	// Name identifies the reader variant.
	Name() string
	// Available reports whether the executing runtime supports this
	// reader; a non-nil error explains why it does not.
	Available() error
	// Read produces the Class description for a subject. The accepted
	// subject type is reader-specific.
	Read(subject any) (Class, error)
}
