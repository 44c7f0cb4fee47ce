package inputfilter

import "strings"

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// flatten walks a nested data map and records every leaf under its dotted
// path. Nested maps become path prefixes; everything else is a leaf.
func flatten(prefix string, data map[string]any, dest map[string]any) {
	for key, value := range data {
		path := joinPath(prefix, key)
		if nested, ok := value.(map[string]any); ok {
			flatten(path, nested, dest)
			continue
		}
		dest[path] = value
	}
}

// unflatten rebuilds a nested map from dotted paths.
func unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for path, value := range flat {
		segments := splitPath(path)
		cursor := out
		for i, segment := range segments {
			if i == len(segments)-1 {
				cursor[segment] = value
				break
			}
			next, ok := cursor[segment].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cursor[segment] = next
			}
			cursor = next
		}
	}
	return out
}
