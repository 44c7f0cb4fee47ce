package forms

import (
	"github.com/goliatone/go-forms/internal/metadata/tagreader"
	"github.com/goliatone/go-forms/pkg/binder"
	"github.com/goliatone/go-forms/pkg/builder"
	core "github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/inputfilter"
)

// Node is any member of a form tree; aliases exported via the root package
// for convenience.
type Node = core.Node

// Element is the leaf node of a form tree.
type Element = core.Element

// Fieldset is the composite node of a form tree.
type Fieldset = core.Fieldset

// Kind classifies the payload an element carries.
type Kind = core.Kind

// ElementOption configures elements and fieldsets at construction.
type ElementOption = core.ElementOption

// Specification is the declarative validation contract compiled into an
// input filter.
type Specification = inputfilter.Specification

// Spec describes a single field's filter and validator pipeline.
type Spec = inputfilter.Spec

// InputFilter validates flat or nested data against a compiled
// specification.
type InputFilter = inputfilter.InputFilter

// Result is the immutable outcome of a validation run.
type Result = inputfilter.Result

// Binding couples a form tree with a data object for extract/hydrate
// round-trips.
type Binding = binder.Binding

// Builder translates reflective metadata into form trees.
type Builder = builder.Builder

// NewElement constructs a leaf element.
func NewElement(name string, options ...ElementOption) *Element {
	return core.NewElement(name, options...)
}

// NewFieldset constructs a composite fieldset.
func NewFieldset(name string, options ...ElementOption) *Fieldset {
	return core.NewFieldset(name, options...)
}

// CompileInputFilter merges the explicit specification with the tree's
// embedded hints and compiles the result into a runnable input filter. It
// is the simplest entry point for callers that already hold a form tree.
func CompileInputFilter(root *Fieldset, explicit Specification, options ...inputfilter.CompileOption) (*InputFilter, error) {
	return inputfilter.Compile(root, explicit, options...)
}

// NewBinding couples a form tree with a compiled input filter.
func NewBinding(root *Fieldset, engine *InputFilter, options ...binder.Option) (*Binding, error) {
	return binder.New(root, engine, options...)
}

// BuildForm reads the subject's struct tags and builds its form tree. Use
// the builder factory directly to pick a different reader variant or to
// wire configuration and listeners.
func BuildForm(subject any, options ...builder.Option) (*Fieldset, error) {
	reader := tagreader.New()
	if err := reader.Available(); err != nil {
		return nil, &builder.IncompatibleRuntimeError{Variant: reader.Name(), Err: err}
	}
	return builder.New(reader, options...).Build(subject)
}
