// Package builder turns metadata class descriptions into form trees.
//
// A build moves through a fixed sequence of states. The Factory starts
// idle, selects a reader variant (failing early with
// IncompatibleRuntimeError when the runtime cannot support it), then the
// Builder alternates between constructing tree nodes and dispatching
// listener events until the root fieldset is complete. Any error aborts
// the build with no partial tree.
//
// Listeners are named in configuration and resolved through a
// ServiceLocator; a name that does not resolve to a ListenerAggregate
// aborts construction with ServiceNotCreatedError.
package builder
