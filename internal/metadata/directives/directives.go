// Package directives holds the reference grammar shared by the metadata
// readers: filter/validator references written as plain names or as
// name(key=value,...) option lists.
package directives

import (
	"strconv"
	"strings"
)

// SplitRefs splits a reference list on commas outside parentheses, so
// option lists like string_length(min=3,max=256) stay intact.
func SplitRefs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	depth, start := 0, 0
	for i, r := range raw {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(raw[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(raw[start:]))
	return out
}

// ParseRef turns "string_length(min=3,max=256)" into a name/options literal
// and plain "email_address" into its bare name.
func ParseRef(raw string) any {
	open := strings.Index(raw, "(")
	if open < 0 || !strings.HasSuffix(raw, ")") {
		return raw
	}
	name := strings.TrimSpace(raw[:open])
	options := make(map[string]any)
	for _, pair := range strings.Split(raw[open+1:len(raw)-1], ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}
		if n, err := strconv.Atoi(value); err == nil {
			options[key] = n
		} else {
			options[key] = strings.Trim(value, `"`)
		}
	}
	return map[string]any{"name": name, "options": options}
}

// ParseRefList converts a comma-separated reference list into specification
// literal references.
func ParseRefList(raw string) []any {
	names := SplitRefs(raw)
	if len(names) == 0 {
		return nil
	}
	refs := make([]any, 0, len(names))
	for _, name := range names {
		refs = append(refs, ParseRef(name))
	}
	return refs
}

// SnakeCase converts a Go identifier into its snake_cased member name.
func SnakeCase(name string) string {
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
