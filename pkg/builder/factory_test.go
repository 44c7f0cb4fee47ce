package builder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-forms/internal/metadata/docreader"
	"github.com/goliatone/go-forms/internal/metadata/tagreader"
	"github.com/goliatone/go-forms/pkg/metadata"
)

type brokenReader struct{}

func (brokenReader) Name() string                     { return "broken" }
func (brokenReader) Available() error                 { return errors.New("runtime support missing") }
func (brokenReader) Read(any) (metadata.Class, error) { return metadata.Class{}, nil }

type mapLocator map[string]any

func (l mapLocator) Get(name string) (any, error) {
	service, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("service %q not registered", name)
	}
	return service, nil
}

type recordingListener struct {
	events []Event
}

func (l *recordingListener) Attach(m *EventManager) {
	for _, event := range []Event{EventBuildStart, EventClassVisited, EventMemberVisited, EventBuildComplete} {
		event := event
		m.On(event, func(EventContext) { l.events = append(l.events, event) })
	}
}

func TestFactoryCanBuild(t *testing.T) {
	f := NewFactory()
	if !f.CanBuild(docreader.VariantName) {
		t.Fatalf("legacy variant must always be buildable")
	}
	if !f.CanBuild(tagreader.VariantName) {
		t.Fatalf("tag variant should be buildable on this runtime")
	}
	if f.CanBuild("widgets") {
		t.Fatalf("unknown variant must not be buildable")
	}

	f.Register(brokenReader{})
	if f.CanBuild("broken") {
		t.Fatalf("unavailable variant must not be buildable")
	}
}

func TestFactoryBuildUnknownVariant(t *testing.T) {
	b, err := NewFactory().Build("widgets", Config{})
	var incompatible *IncompatibleRuntimeError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected IncompatibleRuntimeError, got %v", err)
	}
	if b != nil {
		t.Fatalf("no builder may be produced for an unsupported variant")
	}
}

func TestFactoryBuildUnavailableVariant(t *testing.T) {
	f := NewFactory()
	f.Register(brokenReader{})

	b, err := f.Build("broken", Config{})
	var incompatible *IncompatibleRuntimeError
	if !errors.As(err, &incompatible) {
		t.Fatalf("expected IncompatibleRuntimeError, got %v", err)
	}
	if incompatible.Variant != "broken" || incompatible.Unwrap() == nil {
		t.Fatalf("expected probe failure carried: %+v", incompatible)
	}
	if b != nil {
		t.Fatalf("no builder may be produced when the probe fails")
	}
}

func TestFactoryBuildWithListeners(t *testing.T) {
	audit := &recordingListener{}
	b, err := NewFactory().Build(tagreader.VariantName, Config{
		Listeners: []string{"audit"},
		Locator:   mapLocator{"audit": audit},
	})
	if err != nil {
		t.Fatalf("build factory: %v", err)
	}

	if _, err := b.Build(addressForm{}); err != nil {
		t.Fatalf("build tree: %v", err)
	}
	if len(audit.events) == 0 || audit.events[0] != EventBuildStart {
		t.Fatalf("listener attached via locator must observe the build, got %v", audit.events)
	}
}

func TestFactoryBuildInvalidListener(t *testing.T) {
	b, err := NewFactory().Build(tagreader.VariantName, Config{
		Listeners: []string{"audit"},
		Locator:   mapLocator{"audit": "not a listener"},
	})
	var notCreated *ServiceNotCreatedError
	if !errors.As(err, &notCreated) {
		t.Fatalf("expected ServiceNotCreatedError, got %v", err)
	}
	if err.Error() != "Invalid event listener" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if b != nil {
		t.Fatalf("no builder may be produced when a listener fails to resolve")
	}
}

func TestFactoryBuildMissingListenerService(t *testing.T) {
	_, err := NewFactory().Build(tagreader.VariantName, Config{
		Listeners: []string{"ghost"},
		Locator:   mapLocator{},
	})
	var notCreated *ServiceNotCreatedError
	if !errors.As(err, &notCreated) {
		t.Fatalf("expected ServiceNotCreatedError, got %v", err)
	}
	if notCreated.Service != "ghost" {
		t.Fatalf("unexpected service name %q", notCreated.Service)
	}
}

func TestFactoryBuildFromYAMLConfig(t *testing.T) {
	provider, err := NewYAMLProvider([]byte(`
form_annotation_builder:
  preserve_defined_order: true
  listeners:
    - audit
`))
	if err != nil {
		t.Fatalf("provider: %v", err)
	}

	audit := &recordingListener{}
	b, err := NewFactory().Build(tagreader.VariantName, Config{
		Provider: provider,
		Locator:  mapLocator{"audit": audit},
	})
	if err != nil {
		t.Fatalf("build factory: %v", err)
	}

	root, err := b.Build(profileForm{})
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	if !root.PreservesOrder() {
		t.Fatalf("expected preserve_defined_order from config")
	}
	if len(audit.events) == 0 {
		t.Fatalf("expected configured listener to observe the build")
	}
}

func TestYAMLProviderMissingSection(t *testing.T) {
	provider, err := NewYAMLProvider([]byte(`other: {}`))
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	section, err := provider.Section(ConfigSection)
	if err != nil || section != nil {
		t.Fatalf("missing section must yield nil, nil; got %v, %v", section, err)
	}
}
