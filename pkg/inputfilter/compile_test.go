package inputfilter

import (
	"errors"
	"testing"

	"github.com/goliatone/go-forms/pkg/forms"
)

func TestCompileDefaultsMergeUnderHints(t *testing.T) {
	root := forms.NewFieldset("form")
	mustAdd(t, root, forms.NewElement("name", forms.WithInputSpec(map[string]any{
		"required": true,
	})))
	mustAdd(t, root, forms.NewElement("note"))

	engine, err := Compile(root, nil, WithDefaults(Spec{
		Filters: []FilterRef{{Name: "string_trim"}},
	}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	engine.SetData(map[string]any{"name": "  John  ", "note": "  hi  "})
	result, err := engine.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid result: %v", result.Messages())
	}
	if v, _ := result.Value("name"); v != "John" {
		t.Fatalf("expected default filter on hinted field, got %v", v)
	}
	if v, _ := result.Value("note"); v != "hi" {
		t.Fatalf("expected default filter on defaulted field, got %v", v)
	}
}

func TestCompileDefaultsDoNotTouchExplicitSpecs(t *testing.T) {
	root := forms.NewFieldset("form")
	mustAdd(t, root, forms.NewElement("name"))

	engine, err := Compile(root,
		Specification{"name": Field(Spec{Required: true})},
		WithDefaults(Spec{Filters: []FilterRef{{Name: "string_trim"}}}),
	)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	engine.SetData(map[string]any{"name": "  John  "})
	result, err := engine.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if v, _ := result.Value("name"); v != "  John  " {
		t.Fatalf("explicit record must stay verbatim, got %v", v)
	}
}

func TestCompileExplicitRecordResetsHintType(t *testing.T) {
	root := forms.NewFieldset("form")
	mustAdd(t, root, forms.NewElement("avatar",
		forms.WithKind(forms.KindFile),
		forms.WithInputSpec(map[string]any{"type": "file"}),
	))

	// An explicit record shadows the hint entirely: its zero Type means
	// default, which a file element cannot satisfy.
	_, err := Compile(root, Specification{
		"avatar": Field(Spec{Required: true}),
	})
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError, got %v", err)
	}
	if mismatch.Field != "avatar" {
		t.Fatalf("unexpected field in mismatch: %+v", mismatch)
	}

	// Re-specifying the type on the explicit record compiles.
	if _, err := Compile(root, Specification{
		"avatar": Field(Spec{Required: true, Type: TypeFile}),
	}); err != nil {
		t.Fatalf("explicit file type must compile: %v", err)
	}

	// Without an explicit record the hint's own type still applies.
	if _, err := Compile(root, nil); err != nil {
		t.Fatalf("hinted file type must compile: %v", err)
	}
}

func TestCompileExplicitTypeWinsOverHintType(t *testing.T) {
	root := forms.NewFieldset("form")
	mustAdd(t, root, forms.NewElement("upload",
		forms.WithKind(forms.KindFile),
		forms.WithInputSpec(map[string]any{"type": "input"}),
	))

	// The hint alone is incompatible with the file element.
	_, err := Compile(root, nil)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError from hint, got %v", err)
	}

	// The explicit record's type replaces the hint's and compiles.
	if _, err := Compile(root, Specification{
		"upload": Field(Spec{Type: TypeFile}),
	}); err != nil {
		t.Fatalf("explicit type must win over hint type: %v", err)
	}
}

func TestCompileUnknownFilterName(t *testing.T) {
	root := forms.NewFieldset("form")
	mustAdd(t, root, forms.NewElement("name"))

	_, err := Compile(root, Specification{
		"name": Field(Spec{Filters: []FilterRef{{Name: "nope"}}}),
	})
	if err == nil {
		t.Fatalf("expected unresolved filter reference to fail compilation")
	}
}

func TestCompileNilRoot(t *testing.T) {
	if _, err := Compile(nil, nil); err == nil {
		t.Fatalf("expected error for nil root")
	}
}
