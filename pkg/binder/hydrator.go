package binder

import (
	"fmt"
	"reflect"
	"strings"
)

// Hydrator is the pluggable extraction/population protocol between domain
// objects and flat field maps.
type Hydrator interface {
	Extract(obj any) (map[string]any, error)
	Hydrate(data map[string]any, obj any) error
}

// ExtractChecker is an optional Hydrator capability: it reports whether a
// value can be handed back to Extract. The binder uses it to decide when the
// recursive walk may descend into a fieldset's sub-object.
type ExtractChecker interface {
	CanExtract(obj any) bool
}

// ReflectHydrator extracts and populates exported struct fields. Field names
// come from the `form` struct tag when present, otherwise from the
// snake-cased Go field name. Fields tagged `form:"-"` are ignored.
type ReflectHydrator struct{}

// Extract reads the exported fields of a struct (or pointer to struct) into
// a map. Nested struct values are returned as-is so the binder can decide
// whether to recurse.
func (h ReflectHydrator) Extract(obj any) (map[string]any, error) {
	v, err := structValue(obj)
	if err != nil {
		return nil, err
	}

	t := v.Type()
	data := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := fieldName(field)
		if !ok {
			continue
		}
		data[name] = v.Field(i).Interface()
	}
	return data, nil
}

// Hydrate writes map values onto the exported fields of the struct obj
// points to. Nested maps populate nested structs (allocating nil pointers on
// the way); values of incompatible types are reported, not silently dropped.
func (h ReflectHydrator) Hydrate(data map[string]any, obj any) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("binder: hydrate target must be a non-nil pointer, got %T", obj)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("binder: hydrate target must point to a struct, got %T", obj)
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := fieldName(field)
		if !ok {
			continue
		}
		value, present := data[name]
		if !present {
			continue
		}
		if err := h.setField(v.Field(i), value); err != nil {
			return fmt.Errorf("binder: field %q: %w", name, err)
		}
	}
	return nil
}

// CanExtract implements ExtractChecker for structs and non-nil struct
// pointers.
func (h ReflectHydrator) CanExtract(obj any) bool {
	_, err := structValue(obj)
	return err == nil
}

func (h ReflectHydrator) setField(target reflect.Value, value any) error {
	if !target.CanSet() {
		return fmt.Errorf("cannot set value")
	}

	if target.Kind() == reflect.Pointer {
		if value == nil {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		return h.setField(target.Elem(), value)
	}

	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	if nested, ok := value.(map[string]any); ok && target.Kind() == reflect.Struct {
		if !target.CanAddr() {
			return fmt.Errorf("nested struct is not addressable")
		}
		return h.Hydrate(nested, target.Addr().Interface())
	}

	incoming := reflect.ValueOf(value)
	if incoming.Type().AssignableTo(target.Type()) {
		target.Set(incoming)
		return nil
	}
	if isNumericKind(incoming.Kind()) && isNumericKind(target.Kind()) && incoming.Type().ConvertibleTo(target.Type()) {
		target.Set(incoming.Convert(target.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, target.Type())
}

func structValue(obj any) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("binder: extract source is a nil pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("binder: extract source must be a struct, got %T", obj)
	}
	return v, nil
}

func fieldName(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	tag := field.Tag.Get("form")
	if tag == "-" {
		return "", false
	}
	if tag != "" {
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag, true
		}
	}
	return snakeCase(field.Name), true
}

func snakeCase(name string) string {
	var out strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// reflectPointer returns sub unchanged when it is a non-nil pointer to a
// struct, nil otherwise.
func reflectPointer(sub any) any {
	v := reflect.ValueOf(sub)
	if v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct {
		return sub
	}
	return nil
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
