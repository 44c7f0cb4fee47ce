package binder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/inputfilter"
)

type contact struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

type message struct {
	Sender  *contact `form:"sender"`
	Subject string   `form:"subject"`
}

type flatMessage struct {
	Sender  contact `form:"sender"`
	Subject string  `form:"subject"`
}

func messageTree(t *testing.T) (*forms.Fieldset, *inputfilter.InputFilter) {
	t.Helper()
	root := forms.NewFieldset("message")
	sender := forms.NewFieldset("sender")
	mustAdd(t, sender, forms.NewElement("name"))
	mustAdd(t, sender, forms.NewElement("email"))
	mustAdd(t, root, sender)
	mustAdd(t, root, forms.NewElement("subject"))

	engine, err := inputfilter.Compile(root, inputfilter.Specification{
		"sender": inputfilter.Group(inputfilter.Specification{
			"name": inputfilter.Field(inputfilter.Spec{
				Required: true,
				Filters:  []inputfilter.FilterRef{{Name: "string_trim"}},
			}),
			"email": inputfilter.Field(inputfilter.Spec{
				Required:   true,
				Validators: []inputfilter.ValidatorRef{{Name: "email_address"}},
			}),
		}),
		"subject": inputfilter.Field(inputfilter.Spec{Required: true}),
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return root, engine
}

func TestBindExtractsAndAutoHydrates(t *testing.T) {
	root, engine := messageTree(t)
	binding, err := New(root, engine)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}

	msg := &message{
		Sender:  &contact{Name: "  John Doe  ", Email: "j@d.tld"},
		Subject: "hello",
	}
	if err := binding.Bind(msg, BindAuto); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if binding.Source() != DataExtracted {
		t.Fatalf("expected extracted data source")
	}

	// Extraction seeds element values for presentation.
	sender, _ := root.Get("sender")
	name, _ := sender.(*forms.Fieldset).Get("name")
	if v, _ := name.(*forms.Element).Value(); v != "  John Doe  " {
		t.Fatalf("expected seeded element value, got %v", v)
	}

	result, err := binding.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid result: %v", result.Messages())
	}
	if msg.Sender.Name != "John Doe" {
		t.Fatalf("expected auto hydration to write filtered value, got %q", msg.Sender.Name)
	}
}

func TestManualModeSkipsHydration(t *testing.T) {
	root, engine := messageTree(t)
	binding, err := New(root, engine)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}

	msg := &message{Sender: &contact{Name: "  John  ", Email: "j@d.tld"}, Subject: "hi"}
	if err := binding.Bind(msg, BindManual); err != nil {
		t.Fatalf("bind: %v", err)
	}
	result, err := binding.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid result: %v", result.Messages())
	}
	if msg.Sender.Name != "  John  " {
		t.Fatalf("manual mode must not hydrate implicitly, got %q", msg.Sender.Name)
	}

	if err := binding.Hydrate(); err != nil {
		t.Fatalf("explicit hydrate: %v", err)
	}
	if msg.Sender.Name != "John" {
		t.Fatalf("expected explicit hydration, got %q", msg.Sender.Name)
	}
}

func TestSetDataTakesPrecedenceOverExtraction(t *testing.T) {
	root, engine := messageTree(t)
	binding, err := New(root, engine)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}

	msg := &message{Sender: &contact{Name: "Old Name", Email: "old@d.tld"}, Subject: "old"}
	if err := binding.Bind(msg, BindAuto); err != nil {
		t.Fatalf("bind: %v", err)
	}
	binding.SetData(map[string]any{
		"sender":  map[string]any{"name": "New Name", "email": "new@d.tld"},
		"subject": "new",
	})
	if binding.Source() != DataRaw {
		t.Fatalf("expected raw data source after SetData")
	}
	if !binding.IsValid() {
		t.Fatalf("expected valid input")
	}
	if msg.Sender.Name != "New Name" || msg.Subject != "new" {
		t.Fatalf("expected hydration from raw input, got %+v", msg)
	}
}

func TestValueStructSubtreeDelegatesToParentHydrator(t *testing.T) {
	root, engine := messageTree(t)
	binding, err := New(root, engine)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}

	msg := &flatMessage{Sender: contact{Name: " Jane ", Email: "jane@d.tld"}, Subject: "hi"}
	if err := binding.Bind(msg, BindAuto); err != nil {
		t.Fatalf("bind: %v", err)
	}
	result, err := binding.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid result: %v", result.Messages())
	}
	if msg.Sender.Name != "Jane" {
		t.Fatalf("expected parent hydrator to populate value struct, got %q", msg.Sender.Name)
	}
}

func TestRoundTripExtractPopulate(t *testing.T) {
	h := ReflectHydrator{}
	original := contact{Name: "John Doe", Email: "j@d.tld"}

	data, err := h.Extract(original)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var clone contact
	if err := h.Hydrate(data, &clone); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

type selfValidating struct {
	Note string `form:"note"`

	engine *inputfilter.InputFilter
}

func (s *selfValidating) InputFilter() *inputfilter.InputFilter { return s.engine }

func TestOwnInputFilterBypassesComposedEngine(t *testing.T) {
	root := forms.NewFieldset("form")
	mustAdd(t, root, forms.NewElement("note"))

	// The composed engine would reject short notes.
	composed, err := inputfilter.Compile(root, inputfilter.Specification{
		"note": inputfilter.Field(inputfilter.Spec{
			Required: true,
			Validators: []inputfilter.ValidatorRef{{
				Name:    "string_length",
				Options: map[string]any{"min": 50},
			}},
		}),
	})
	if err != nil {
		t.Fatalf("compile composed: %v", err)
	}
	own, err := inputfilter.Compile(root, inputfilter.Specification{
		"note": inputfilter.Field(inputfilter.Spec{Required: true}),
	})
	if err != nil {
		t.Fatalf("compile own: %v", err)
	}

	binding, err := New(root, composed)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}
	obj := &selfValidating{Note: "short", engine: own}
	if err := binding.Bind(obj, BindAuto); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !binding.IsValid() {
		t.Fatalf("expected the object's own engine to accept the value")
	}
}

func TestGetData(t *testing.T) {
	root, engine := messageTree(t)
	binding, err := New(root, engine)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}

	if _, err := binding.GetData(GetObject); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}

	binding.SetData(map[string]any{
		"sender":  map[string]any{"name": "John", "email": "j@d.tld"},
		"subject": "hi",
	})
	if !binding.IsValid() {
		t.Fatalf("expected valid input")
	}
	flat, err := binding.GetData(GetFlatMap)
	if err != nil {
		t.Fatalf("get flat map: %v", err)
	}
	want := map[string]any{
		"sender":  map[string]any{"name": "John", "email": "j@d.tld"},
		"subject": "hi",
	}
	if diff := cmp.Diff(want, flat); diff != "" {
		t.Fatalf("flat map mismatch (-want +got):\n%s", diff)
	}
}

func TestUnbindClearsContext(t *testing.T) {
	root, engine := messageTree(t)
	binding, err := New(root, engine)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}
	msg := &message{Sender: &contact{Name: "John", Email: "j@d.tld"}, Subject: "hi"}
	if err := binding.Bind(msg, BindAuto); err != nil {
		t.Fatalf("bind: %v", err)
	}
	binding.Unbind()
	if _, bound := binding.Bound(); bound {
		t.Fatalf("expected no bound object after Unbind")
	}
	if _, err := binding.Validate(); !errors.Is(err, ErrNotBound) {
		t.Fatalf("expected ErrNotBound after Unbind, got %v", err)
	}
}

func TestUnbindClearsOwnEngineData(t *testing.T) {
	root := forms.NewFieldset("form")
	mustAdd(t, root, forms.NewElement("note"))

	composed, err := inputfilter.Compile(root, inputfilter.Specification{
		"note": inputfilter.Field(inputfilter.Spec{Required: true}),
	})
	if err != nil {
		t.Fatalf("compile composed: %v", err)
	}
	own, err := inputfilter.Compile(root, inputfilter.Specification{
		"note": inputfilter.Field(inputfilter.Spec{Required: true}),
	})
	if err != nil {
		t.Fatalf("compile own: %v", err)
	}

	binding, err := New(root, composed)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}
	obj := &selfValidating{Note: "hello", engine: own}
	if err := binding.Bind(obj, BindAuto); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !own.HasData() {
		t.Fatalf("expected extraction to seed the object's own engine")
	}

	binding.Unbind()
	if own.HasData() {
		t.Fatalf("expected Unbind to clear the object's own engine")
	}
	if composed.HasData() {
		t.Fatalf("expected Unbind to clear the composed engine")
	}
}

func mustAdd(t *testing.T, fs *forms.Fieldset, node forms.Node) {
	t.Helper()
	if err := fs.Add(node); err != nil {
		t.Fatalf("add %s: %v", node.Name(), err)
	}
}
