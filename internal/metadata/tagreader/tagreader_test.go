package tagreader

import (
	"testing"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/metadata"
)

type senderInput struct {
	Name     string `form:"name,label=Full Name,priority=10,required" filter:"string_trim" validate:"string_length(min=3,max=256)"`
	Email    string `form:"email,required,type=email" validate:"email_address"`
	Avatar   string `form:"avatar,kind=file"`
	Internal string `form:"-"`
	secret   string
}

type messageInput struct {
	Sender  senderInput `form:"sender"`
	Tags    []string    `form:"tags"`
	Subject string
	Urgent  bool
}

type loopA struct {
	B *loopB `form:"b"`
}

type loopB struct {
	A *loopA `form:"a"`
}

func TestReaderAvailable(t *testing.T) {
	if err := New().Available(); err != nil {
		t.Fatalf("expected tag reflection on this runtime: %v", err)
	}
}

func TestReadLeafMembers(t *testing.T) {
	class, err := New().Read(senderInput{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if class.Name != "senderInput" {
		t.Fatalf("unexpected class name %q", class.Name)
	}
	if len(class.Members) != 3 {
		t.Fatalf("expected 3 members (excluded/unexported skipped), got %d", len(class.Members))
	}

	name := class.Members[0]
	if name.Name != "name" || name.Kind != metadata.MemberElement {
		t.Fatalf("unexpected member: %+v", name)
	}
	if name.Options.Label != "Full Name" || name.Options.Priority != 10 || !name.Options.Required {
		t.Fatalf("unexpected options: %+v", name.Options)
	}
	spec := name.Options.InputSpec
	if spec == nil || spec["required"] != true {
		t.Fatalf("expected required hint, got %v", spec)
	}
	filters, _ := spec["filters"].([]any)
	if len(filters) != 1 || filters[0] != "string_trim" {
		t.Fatalf("unexpected filters: %v", filters)
	}
	validatorRefs, _ := spec["validators"].([]any)
	if len(validatorRefs) != 1 {
		t.Fatalf("unexpected validators: %v", validatorRefs)
	}
	ref, _ := validatorRefs[0].(map[string]any)
	if ref["name"] != "string_length" {
		t.Fatalf("unexpected validator ref: %v", ref)
	}
	options, _ := ref["options"].(map[string]any)
	if options["min"] != 3 || options["max"] != 256 {
		t.Fatalf("unexpected validator options: %v", options)
	}

	email := class.Members[1]
	if email.Type != "email" {
		t.Fatalf("expected explicit type override, got %q", email.Type)
	}

	avatar := class.Members[2]
	if avatar.Options.ElementKind != forms.KindFile {
		t.Fatalf("expected file kind, got %q", avatar.Options.ElementKind)
	}
}

func TestReadNestedAndCollections(t *testing.T) {
	class, err := New().Read(&messageInput{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(class.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(class.Members))
	}

	sender := class.Members[0]
	if sender.Kind != metadata.MemberFieldset || sender.Class == nil {
		t.Fatalf("expected nested fieldset member, got %+v", sender)
	}
	if len(sender.Class.Members) != 3 {
		t.Fatalf("expected nested members, got %d", len(sender.Class.Members))
	}

	tags := class.Members[1]
	if tags.Kind != metadata.MemberCollection || tags.Class != nil || tags.Type != "text" {
		t.Fatalf("expected scalar collection, got %+v", tags)
	}

	subject := class.Members[2]
	if subject.Name != "subject" {
		t.Fatalf("expected snake-cased default name, got %q", subject.Name)
	}

	urgent := class.Members[3]
	if urgent.Type != "checkbox" {
		t.Fatalf("expected checkbox type for bool, got %q", urgent.Type)
	}
}

func TestReadRejectsRecursiveReferences(t *testing.T) {
	if _, err := New().Read(loopA{}); err == nil {
		t.Fatalf("expected recursive reference error")
	}
}

func TestReadRejectsNonStructs(t *testing.T) {
	if _, err := New().Read(42); err == nil {
		t.Fatalf("expected error for non-struct subject")
	}
	if _, err := New().Read(nil); err == nil {
		t.Fatalf("expected error for nil subject")
	}
}
