package forms

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when adding a fieldset would make it its own
// descendant.
var ErrCycle = errors.New("forms: fieldset cannot contain itself")

// ErrNilChild is returned when a nil node is added to a fieldset.
var ErrNilChild = errors.New("forms: child node is required")

// DuplicateNameError reports a sibling name collision. The tree is left
// unchanged when it is returned.
type DuplicateNameError struct {
	Fieldset string
	Name     string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("forms: fieldset %q already has a child named %q", e.Fieldset, e.Name)
}

// AlreadyAttachedError reports adding a node that another fieldset already
// owns. The tree is left unchanged when it is returned.
type AlreadyAttachedError struct {
	Node  string
	Owner string
}

func (e *AlreadyAttachedError) Error() string {
	return fmt.Sprintf("forms: node %q is already attached to fieldset %q", e.Node, e.Owner)
}
