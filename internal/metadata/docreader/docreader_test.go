package docreader

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/metadata"
)

const messageSource = `package fixtures

type Message struct {
	// form:element name=subject label="Message Subject" priority=5 required
	// form:filter string_trim
	// form:validate string_length(min=3,max=256)
	Subject string

	// form:element kind=file
	Attachment string

	// form:fieldset name=sender label="Sender"
	Sender Contact

	// form:collection name=recipients
	Recipients []Contact

	// form:exclude
	Internal string

	Ignored string
}

type Contact struct {
	// form:element required
	// form:validate email_address
	Email string
}
`

func sourceFor(src string) Source {
	return Source{
		FS:       fstest.MapFS{"fixtures/message.go": {Data: []byte(src)}},
		Path:     "fixtures/message.go",
		TypeName: "Message",
	}
}

func TestReaderAlwaysAvailable(t *testing.T) {
	if err := New().Available(); err != nil {
		t.Fatalf("legacy reader must not need runtime support: %v", err)
	}
}

func TestReadDirectives(t *testing.T) {
	class, err := New().Read(sourceFor(messageSource))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if class.Name != "Message" {
		t.Fatalf("unexpected class name %q", class.Name)
	}
	if len(class.Members) != 4 {
		t.Fatalf("expected 4 members (excluded and undirected skipped), got %d", len(class.Members))
	}

	subject := class.Members[0]
	if subject.Name != "subject" || subject.Kind != metadata.MemberElement {
		t.Fatalf("unexpected member: %+v", subject)
	}
	if subject.Options.Label != "Message Subject" || subject.Options.Priority != 5 || !subject.Options.Required {
		t.Fatalf("unexpected options: %+v", subject.Options)
	}
	spec := subject.Options.InputSpec
	if spec == nil || spec["required"] != true {
		t.Fatalf("expected required hint, got %v", spec)
	}
	filters, _ := spec["filters"].([]any)
	if len(filters) != 1 || filters[0] != "string_trim" {
		t.Fatalf("unexpected filters: %v", filters)
	}
	validatorRefs, _ := spec["validators"].([]any)
	ref, _ := validatorRefs[0].(map[string]any)
	if ref["name"] != "string_length" {
		t.Fatalf("unexpected validator ref: %v", ref)
	}

	attachment := class.Members[1]
	if attachment.Name != "attachment" || attachment.Options.ElementKind != forms.KindFile {
		t.Fatalf("unexpected member: %+v", attachment)
	}

	sender := class.Members[2]
	if sender.Kind != metadata.MemberFieldset || sender.Class == nil {
		t.Fatalf("expected fieldset member, got %+v", sender)
	}
	if len(sender.Class.Members) != 1 || sender.Class.Members[0].Name != "email" {
		t.Fatalf("unexpected nested class: %+v", sender.Class)
	}

	recipients := class.Members[3]
	if recipients.Kind != metadata.MemberCollection || recipients.Class == nil {
		t.Fatalf("expected collection member, got %+v", recipients)
	}
}

func TestReadUnknownDirective(t *testing.T) {
	src := strings.Replace(messageSource, "form:exclude", "form:widget", 1)
	_, err := New().Read(sourceFor(src))
	if err == nil || !strings.Contains(err.Error(), "unknown directive") {
		t.Fatalf("expected unknown directive error, got %v", err)
	}
}

func TestReadMissingType(t *testing.T) {
	src := sourceFor(messageSource)
	src.TypeName = "Missing"
	if _, err := New().Read(src); err == nil {
		t.Fatalf("expected error for missing type")
	}
}

func TestReadRecursiveReference(t *testing.T) {
	const recursive = `package fixtures

type Node struct {
	// form:fieldset
	Parent *Node
}
`
	src := sourceFor(recursive)
	src.TypeName = "Node"
	_, err := New().Read(src)
	if err == nil || !strings.Contains(err.Error(), "recursive") {
		t.Fatalf("expected recursive reference error, got %v", err)
	}
}

func TestReadRejectsForeignSubject(t *testing.T) {
	if _, err := New().Read(struct{}{}); err == nil {
		t.Fatalf("expected error for non-Source subject")
	}
}
