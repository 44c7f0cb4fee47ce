package forms

// AttributeMap is a string-keyed map that remembers first-insertion order.
// Updating an existing key keeps its original position.
type AttributeMap struct {
	keys   []string
	values map[string]any
}

// NewAttributeMap constructs an empty ordered attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{values: make(map[string]any)}
}

// Set stores a value under key.
func (m *AttributeMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get reads the value stored under key.
func (m *AttributeMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *AttributeMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key, releasing its position.
func (m *AttributeMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored attributes.
func (m *AttributeMap) Len() int { return len(m.values) }

// Keys returns the keys in insertion order.
func (m *AttributeMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each walks the attributes in insertion order, stopping when fn returns
// false.
func (m *AttributeMap) Each(fn func(key string, value any) bool) {
	for _, key := range m.keys {
		if !fn(key, m.values[key]) {
			return
		}
	}
}
