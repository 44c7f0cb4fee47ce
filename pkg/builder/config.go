package builder

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ConfigSection is the configuration section the factory consults.
const ConfigSection = "form_annotation_builder"

// Section keys recognised under ConfigSection.
const (
	configKeyPreserveOrder = "preserve_defined_order"
	configKeyListeners     = "listeners"
)

// ConfigProvider exposes named configuration sections as generic maps. A
// missing section yields a nil map, not an error.
type ConfigProvider interface {
	Section(name string) (map[string]any, error)
}

// YAMLProvider serves configuration sections from a parsed YAML document.
type YAMLProvider struct {
	doc map[string]any
}

// NewYAMLProvider parses a YAML document from raw bytes.
func NewYAMLProvider(raw []byte) (*YAMLProvider, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("builder: parse config: %w", err)
	}
	return &YAMLProvider{doc: doc}, nil
}

// NewYAMLProviderFromFS loads and parses a YAML document from a filesystem.
func NewYAMLProviderFromFS(fsys fs.FS, path string) (*YAMLProvider, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("builder: read config %s: %w", path, err)
	}
	return NewYAMLProvider(raw)
}

// Section implements ConfigProvider.
func (p *YAMLProvider) Section(name string) (map[string]any, error) {
	raw, ok := p.doc[name]
	if !ok {
		return nil, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("builder: config section %q is not a mapping", name)
	}
	return section, nil
}
