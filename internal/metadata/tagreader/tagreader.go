// Package tagreader reads structural form metadata from struct tags via
// reflection. It is the attribute-variant reader selected through the
// builder factory; runtimes that strip struct tags (verified by a canary
// probe) cannot use it and must fall back to the legacy doc-comment reader.
package tagreader

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-forms/internal/metadata/directives"
	"github.com/goliatone/go-forms/pkg/forms"
	"github.com/goliatone/go-forms/pkg/metadata"
)

// VariantName is the factory variant key for this reader.
const VariantName = "tags"

// ErrTagsUnavailable is reported by Available on runtimes that do not
// preserve struct tags through reflection.
var ErrTagsUnavailable = errors.New("tagreader: runtime does not expose struct tags via reflection")

type canary struct {
	Probe string `form:"probe"`
}

// Reader implements metadata.Reader over reflect struct tags.
type Reader struct{}

// New constructs the tag reader.
func New() *Reader { return &Reader{} }

// Name implements metadata.Reader.
func (r *Reader) Name() string { return VariantName }

// Available probes whether reflection preserves struct tags on this runtime.
func (r *Reader) Available() error {
	field, ok := reflect.TypeOf(canary{}).FieldByName("Probe")
	if !ok || field.Tag.Get("form") != "probe" {
		return ErrTagsUnavailable
	}
	return nil
}

// Read accepts a struct value, a pointer to struct, or a reflect.Type and
// produces its Class description.
func (r *Reader) Read(subject any) (metadata.Class, error) {
	if err := r.Available(); err != nil {
		return metadata.Class{}, err
	}
	t, err := structType(subject)
	if err != nil {
		return metadata.Class{}, err
	}
	return readClass(t, map[reflect.Type]bool{})
}

func structType(subject any) (reflect.Type, error) {
	var t reflect.Type
	switch v := subject.(type) {
	case nil:
		return nil, errors.New("tagreader: subject is required")
	case reflect.Type:
		t = v
	default:
		t = reflect.TypeOf(subject)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tagreader: subject must be a struct, got %s", t.Kind())
	}
	return t, nil
}

func readClass(t reflect.Type, seen map[reflect.Type]bool) (metadata.Class, error) {
	if seen[t] {
		return metadata.Class{}, fmt.Errorf("tagreader: recursive class reference through %s", t)
	}
	seen[t] = true
	defer delete(seen, t)

	class := metadata.Class{Name: t.Name()}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		member, skip, err := readMember(field, seen)
		if err != nil {
			return metadata.Class{}, err
		}
		if skip {
			continue
		}
		class.Members = append(class.Members, member)
	}
	return class, nil
}

func readMember(field reflect.StructField, seen map[reflect.Type]bool) (metadata.Member, bool, error) {
	tag := parseFormTag(field.Tag.Get("form"))
	if tag.exclude {
		return metadata.Member{}, true, nil
	}

	member := metadata.Member{
		Name: tag.name,
		Kind: metadata.MemberElement,
	}
	if member.Name == "" {
		member.Name = directives.SnakeCase(field.Name)
	}

	fieldType := field.Type
	for fieldType.Kind() == reflect.Pointer {
		fieldType = fieldType.Elem()
	}

	switch {
	case tag.collection || fieldType.Kind() == reflect.Slice:
		member.Kind = metadata.MemberCollection
		elem := fieldType
		if fieldType.Kind() == reflect.Slice {
			elem = fieldType.Elem()
			for elem.Kind() == reflect.Pointer {
				elem = elem.Elem()
			}
		}
		if elem.Kind() == reflect.Struct {
			nested, err := readClass(elem, seen)
			if err != nil {
				return metadata.Member{}, false, err
			}
			member.Class = &nested
		} else {
			member.Type = inputTypeFor(elem.Kind())
		}
	case tag.fieldset || fieldType.Kind() == reflect.Struct:
		member.Kind = metadata.MemberFieldset
		nested, err := readClass(fieldType, seen)
		if err != nil {
			return metadata.Member{}, false, err
		}
		member.Class = &nested
	default:
		member.Type = inputTypeFor(fieldType.Kind())
	}

	if tag.inputType != "" {
		member.Type = tag.inputType
	}
	member.Options = metadata.MemberOptions{
		Label:       tag.label,
		Priority:    tag.priority,
		Required:    tag.required,
		ElementKind: tag.kind,
		Attributes:  tag.attributes,
	}
	member.Options.InputSpec = buildInputSpec(tag, field)
	return member, false, nil
}

type formTag struct {
	name       string
	label      string
	inputType  string
	kind       forms.Kind
	priority   int
	required   bool
	fieldset   bool
	collection bool
	exclude    bool
	attributes []metadata.Attribute
}

func parseFormTag(raw string) formTag {
	var tag formTag
	if raw == "" {
		return tag
	}
	if raw == "-" {
		tag.exclude = true
		return tag
	}
	parts := strings.Split(raw, ",")
	tag.name = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "label":
			tag.label = value
		case "type":
			tag.inputType = value
		case "kind":
			tag.kind = forms.Kind(value)
		case "priority":
			if n, err := strconv.Atoi(value); err == nil {
				tag.priority = n
			}
		case "required":
			tag.required = true
		case "fieldset":
			tag.fieldset = true
		case "collection":
			tag.collection = true
		default:
			if key == "" {
				continue
			}
			var attrValue any = true
			if hasValue {
				attrValue = value
			}
			tag.attributes = append(tag.attributes, metadata.Attribute{Key: key, Value: attrValue})
		}
	}
	return tag
}

func buildInputSpec(tag formTag, field reflect.StructField) map[string]any {
	spec := make(map[string]any)
	if tag.required {
		spec["required"] = true
	}
	if refs := directives.ParseRefList(field.Tag.Get("filter")); len(refs) > 0 {
		spec["filters"] = refs
	}
	if refs := directives.ParseRefList(field.Tag.Get("validate")); len(refs) > 0 {
		spec["validators"] = refs
	}
	if len(spec) == 0 {
		return nil
	}
	return spec
}

func inputTypeFor(kind reflect.Kind) string {
	switch kind {
	case reflect.Bool:
		return "checkbox"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "text"
	}
}

