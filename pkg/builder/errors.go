package builder

import "fmt"

// DuplicateElementNameError reports two members of the same class resolving
// to the same node name.
type DuplicateElementNameError struct {
	Class string
	Name  string
	Err   error
}

func (e *DuplicateElementNameError) Error() string {
	return fmt.Sprintf("builder: class %s declares duplicate member %q", e.Class, e.Name)
}

func (e *DuplicateElementNameError) Unwrap() error { return e.Err }

// IncompatibleRuntimeError reports a reader variant the current runtime
// cannot support.
type IncompatibleRuntimeError struct {
	Variant string
	Err     error
}

func (e *IncompatibleRuntimeError) Error() string {
	return fmt.Sprintf("builder: variant %q is not supported on this runtime", e.Variant)
}

func (e *IncompatibleRuntimeError) Unwrap() error { return e.Err }

// ServiceNotCreatedError reports a configured listener name that could not
// be resolved into a ListenerAggregate.
type ServiceNotCreatedError struct {
	Service string
	Err     error
}

func (e *ServiceNotCreatedError) Error() string { return "Invalid event listener" }

func (e *ServiceNotCreatedError) Unwrap() error { return e.Err }
