// Package binder connects a domain object to a forms tree and its compiled
// input filter. Binding extracts the object's values into the tree and seeds
// validation input; a successful validation hydrates the object back from the
// validated values (automatically in BindAuto, on request in BindManual).
// Extraction and hydration recurse per fieldset: when the bound sub-object
// for a fieldset can itself be extracted the walk descends with that
// sub-object, otherwise the parent-level hydrator handles the whole remaining
// subtree. A bound object exposing its own input filter bypasses the
// composed engine entirely for that binding.
package binder
