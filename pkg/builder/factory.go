package builder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-forms/internal/metadata/docreader"
	"github.com/goliatone/go-forms/internal/metadata/tagreader"
	"github.com/goliatone/go-forms/pkg/metadata"
)

// ServiceLocator resolves configured listener names into live services.
type ServiceLocator interface {
	Get(name string) (any, error)
}

// Config drives factory construction of a Builder. Values loaded from a
// Provider's ConfigSection override the zero fields.
type Config struct {
	PreserveDefinedOrder bool
	Listeners            []string
	Locator              ServiceLocator
	Provider             ConfigProvider
}

// Factory selects a metadata reader variant and assembles a Builder around
// it. The stock variants are docreader.VariantName (always available) and
// tagreader.VariantName (subject to a runtime probe).
type Factory struct {
	readers map[string]metadata.Reader
}

// NewFactory constructs a factory with the stock reader variants.
func NewFactory() *Factory {
	f := &Factory{readers: make(map[string]metadata.Reader)}
	f.Register(tagreader.New())
	f.Register(docreader.New())
	return f
}

// Register adds or replaces a reader variant under its own name.
func (f *Factory) Register(reader metadata.Reader) {
	f.readers[reader.Name()] = reader
}

// Variants lists the registered variant names.
func (f *Factory) Variants() []string {
	names := make([]string, 0, len(f.readers))
	for name := range f.readers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanBuild reports whether the variant is registered and supported on this
// runtime.
func (f *Factory) CanBuild(variant string) bool {
	reader, ok := f.readers[variant]
	return ok && reader.Available() == nil
}

// Build assembles a Builder for the variant. An unsupported variant fails
// with *IncompatibleRuntimeError before any construction; a listener that
// cannot be resolved fails with *ServiceNotCreatedError and no builder is
// produced.
func (f *Factory) Build(variant string, cfg Config) (*Builder, error) {
	reader, ok := f.readers[variant]
	if !ok {
		return nil, &IncompatibleRuntimeError{Variant: variant}
	}
	if err := reader.Available(); err != nil {
		return nil, &IncompatibleRuntimeError{Variant: variant, Err: err}
	}

	if cfg.Provider != nil {
		section, err := cfg.Provider.Section(ConfigSection)
		if err != nil {
			return nil, err
		}
		applySection(&cfg, section)
	}

	listeners, err := resolveListeners(cfg)
	if err != nil {
		return nil, err
	}

	options := []Option{WithPreserveDefinedOrder(cfg.PreserveDefinedOrder)}
	if len(listeners) > 0 {
		options = append(options, WithListeners(listeners...))
	}
	return New(reader, options...), nil
}

func applySection(cfg *Config, section map[string]any) {
	if section == nil {
		return
	}
	if v, ok := section[configKeyPreserveOrder].(bool); ok {
		cfg.PreserveDefinedOrder = v
	}
	if raw, ok := section[configKeyListeners].([]any); ok {
		for _, item := range raw {
			if name, ok := item.(string); ok {
				cfg.Listeners = append(cfg.Listeners, name)
			}
		}
	}
}

func resolveListeners(cfg Config) ([]ListenerAggregate, error) {
	if len(cfg.Listeners) == 0 {
		return nil, nil
	}
	if cfg.Locator == nil {
		return nil, &ServiceNotCreatedError{
			Service: cfg.Listeners[0],
			Err:     errors.New("builder: listeners configured without a service locator"),
		}
	}
	out := make([]ListenerAggregate, 0, len(cfg.Listeners))
	for _, name := range cfg.Listeners {
		service, err := cfg.Locator.Get(name)
		if err != nil {
			return nil, &ServiceNotCreatedError{Service: name, Err: err}
		}
		aggregate, ok := service.(ListenerAggregate)
		if !ok {
			return nil, &ServiceNotCreatedError{
				Service: name,
				Err:     fmt.Errorf("builder: service %q does not implement ListenerAggregate", name),
			}
		}
		out = append(out, aggregate)
	}
	return out, nil
}
