package filters

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Built-in filter names.
const (
	StringTrim = "string_trim"
	StripTags  = "strip_tags"
	ToLower    = "to_lower"
	ToUpper    = "to_upper"
	ToNull     = "to_null"
)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// Builtin returns a registry pre-populated with the built-in filters.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(StringTrim, func(map[string]any) (Filter, error) {
		return Func{FilterName: StringTrim, Fn: stringFilter(strings.TrimSpace)}, nil
	})
	r.MustRegister(ToLower, func(map[string]any) (Filter, error) {
		return Func{FilterName: ToLower, Fn: stringFilter(strings.ToLower)}, nil
	})
	r.MustRegister(ToUpper, func(map[string]any) (Filter, error) {
		return Func{FilterName: ToUpper, Fn: stringFilter(strings.ToUpper)}, nil
	})
	r.MustRegister(StripTags, func(map[string]any) (Filter, error) {
		return Func{FilterName: StripTags, Fn: stringFilter(sanitizeMarkup)}, nil
	})
	r.MustRegister(ToNull, func(map[string]any) (Filter, error) {
		return Func{FilterName: ToNull, Fn: func(value any) any {
			if s, ok := value.(string); ok && s == "" {
				return nil
			}
			return value
		}}, nil
	})
	return r
}

func stringFilter(fn func(string) string) func(any) any {
	return func(value any) any {
		s, ok := value.(string)
		if !ok {
			return value
		}
		return fn(s)
	}
}

func sanitizeMarkup(s string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy.Sanitize(s)
}
