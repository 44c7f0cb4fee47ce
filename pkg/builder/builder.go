package builder

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/metadata"
)

// Node option keys set on collection fieldsets.
const (
	// OptionCollection marks a fieldset that represents a repeatable
	// collection rather than a fixed group.
	OptionCollection = "collection"
	// OptionTargetTemplate holds the forms.Node cloned for each collection
	// item.
	OptionTargetTemplate = "target_template"
)

// Labeler derives a display label from a member name.
type Labeler func(name string) string

// Option configures a Builder.
type Option func(*Builder)

// WithPreserveDefinedOrder makes built fieldsets keep declaration order
// instead of priority order.
func WithPreserveDefinedOrder(preserve bool) Option {
	return func(b *Builder) { b.preserveOrder = preserve }
}

// WithListeners attaches listener aggregates to the builder's event manager
// before any build runs.
func WithListeners(listeners ...ListenerAggregate) Option {
	return func(b *Builder) { b.listeners = append(b.listeners, listeners...) }
}

// WithLabeler replaces the default label derivation.
func WithLabeler(labeler Labeler) Option {
	return func(b *Builder) { b.labeler = labeler }
}

// Builder translates metadata classes into form trees.
type Builder struct {
	reader        metadata.Reader
	events        *EventManager
	labeler       Labeler
	listeners     []ListenerAggregate
	preserveOrder bool
}

// New constructs a builder over the given metadata reader.
func New(reader metadata.Reader, options ...Option) *Builder {
	b := &Builder{
		reader:  reader,
		events:  NewEventManager(),
		labeler: DefaultLabeler,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(b)
	}
	for _, listener := range b.listeners {
		listener.Attach(b.events)
	}
	return b
}

// Events exposes the builder's event manager for ad-hoc handlers.
func (b *Builder) Events() *EventManager { return b.events }

// Build reads the subject's metadata and translates it into a form tree.
func (b *Builder) Build(subject any) (*forms.Fieldset, error) {
	if b.reader == nil {
		return nil, errors.New("builder: reader is required")
	}
	class, err := b.reader.Read(subject)
	if err != nil {
		return nil, fmt.Errorf("builder: read metadata: %w", err)
	}
	return b.BuildFromClass(class)
}

// BuildFromClass translates an already-read class description. The
// translation is pure: a class always yields the same tree.
func (b *Builder) BuildFromClass(class metadata.Class) (*forms.Fieldset, error) {
	b.events.Trigger(EventContext{Event: EventBuildStart, Class: &class})
	root, err := b.buildFieldset(class.Name, class, metadata.MemberOptions{Label: class.Options.Label})
	if err != nil {
		return nil, err
	}
	b.events.Trigger(EventContext{Event: EventBuildComplete, Class: &class, Fieldset: root})
	return root, nil
}

func (b *Builder) buildFieldset(name string, class metadata.Class, opts metadata.MemberOptions) (*forms.Fieldset, error) {
	fs := forms.NewFieldset(name, b.fieldsetOptions(name, opts)...)
	fs.SetPreserveOrder(b.preserveOrder)
	b.events.Trigger(EventContext{Event: EventClassVisited, Class: &class, Fieldset: fs})

	for i := range class.Members {
		member := class.Members[i]
		node, err := b.buildMember(member)
		if err != nil {
			return nil, err
		}
		if err := fs.Add(node); err != nil {
			var dup *forms.DuplicateNameError
			if errors.As(err, &dup) {
				return nil, &DuplicateElementNameError{Class: class.Name, Name: member.Name, Err: err}
			}
			return nil, err
		}
		b.events.Trigger(EventContext{
			Event:    EventMemberVisited,
			Class:    &class,
			Member:   &member,
			Fieldset: fs,
			Node:     node,
		})
	}
	return fs, nil
}

func (b *Builder) buildMember(member metadata.Member) (forms.Node, error) {
	switch member.Kind {
	case metadata.MemberFieldset:
		if member.Class == nil {
			return nil, fmt.Errorf("builder: fieldset member %q has no class", member.Name)
		}
		return b.buildFieldset(member.Name, *member.Class, member.Options)
	case metadata.MemberCollection:
		return b.buildCollection(member)
	default:
		return b.buildElement(member), nil
	}
}

// buildCollection yields a fieldset marked as a collection, carrying the
// node template each item of the bound collection instantiates.
func (b *Builder) buildCollection(member metadata.Member) (forms.Node, error) {
	fs := forms.NewFieldset(member.Name, b.fieldsetOptions(member.Name, member.Options)...)
	fs.SetPreserveOrder(b.preserveOrder)
	fs.SetOption(OptionCollection, true)

	var template forms.Node
	if member.Class != nil {
		nested, err := b.buildFieldset(member.Name, *member.Class, metadata.MemberOptions{})
		if err != nil {
			return nil, err
		}
		template = nested
	} else {
		leaf := member
		leaf.Kind = metadata.MemberElement
		template = b.buildElement(leaf)
	}
	fs.SetOption(OptionTargetTemplate, template)
	return fs, nil
}

func (b *Builder) buildElement(member metadata.Member) *forms.Element {
	opts := member.Options
	elementOptions := []forms.ElementOption{
		forms.WithLabel(b.label(member.Name, opts.Label)),
	}
	if opts.ElementKind != "" {
		elementOptions = append(elementOptions, forms.WithKind(opts.ElementKind))
	}
	if opts.Priority != 0 {
		elementOptions = append(elementOptions, forms.WithPriority(opts.Priority))
	}
	if member.Type != "" {
		elementOptions = append(elementOptions, forms.WithAttribute("type", member.Type))
	}
	for _, attr := range opts.Attributes {
		elementOptions = append(elementOptions, forms.WithAttribute(attr.Key, attr.Value))
	}
	if opts.InputSpec != nil {
		elementOptions = append(elementOptions, forms.WithInputSpec(opts.InputSpec))
	}
	return forms.NewElement(member.Name, elementOptions...)
}

func (b *Builder) fieldsetOptions(name string, opts metadata.MemberOptions) []forms.ElementOption {
	elementOptions := []forms.ElementOption{
		forms.WithLabel(b.label(name, opts.Label)),
	}
	if opts.Priority != 0 {
		elementOptions = append(elementOptions, forms.WithPriority(opts.Priority))
	}
	for _, attr := range opts.Attributes {
		elementOptions = append(elementOptions, forms.WithAttribute(attr.Key, attr.Value))
	}
	return elementOptions
}

func (b *Builder) label(name, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if b.labeler == nil {
		return ""
	}
	return b.labeler(name)
}
