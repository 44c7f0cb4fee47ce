// Package forms defines the composite input tree: leaf Elements carrying a
// name, ordered attributes, options, and a current value, and Fieldsets that
// collect Elements and nested Fieldsets under unique names. Traversal order is
// either declaration order (when preserve-order is set) or priority order with
// a stable insertion tie-break. Hint capabilities (InputProvider,
// InputFilterProvider) expose per-node input specifications that the
// inputfilter package merges into a compiled specification.
package forms
