package animation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML form of a Catalog.
//
//	defaultCrossFade: 0.5
//	idle: [idle, idle_s, idle_n]
//	talking: [talking1, talking2]
//	animations:
//	  - {name: idle, loopForever: true, crossFade: 0.5}
//	  - {name: greeting, crossFade: 0.2}
type CatalogFile struct {
	DefaultCrossFade *float32         `yaml:"defaultCrossFade,omitempty"`
	Idle             []string          `yaml:"idle"`
	Talking          []string          `yaml:"talking"`
	Animations       []AnimationPolicy `yaml:"animations"`
}

// Build converts the file form into a validated Catalog.
//
// Returns:
//   - Catalog: the catalog described by the file
//   - error: an error wrapping ErrInvalidCatalog if validation fails
func (f CatalogFile) Build() (Catalog, error) {
	options := []CatalogBuilderOption{
		WithPolicies(f.Animations...),
		WithIdleAnimations(f.Idle...),
		WithTalkingAnimations(f.Talking...),
	}
	if f.DefaultCrossFade != nil {
		options = append(options, WithDefaultCrossFade(*f.DefaultCrossFade))
	}

	c := NewCatalog(options...)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// CatalogFileOf converts a Catalog back into its file form.
//
// Parameters:
//   - c: the catalog to convert
//
// Returns:
//   - CatalogFile: the file form
func CatalogFileOf(c Catalog) CatalogFile {
	def := c.DefaultCrossFade()
	f := CatalogFile{
		DefaultCrossFade: &def,
		Idle:             c.IdleAnimations(),
		Talking:          c.TalkingAnimations(),
	}
	for _, name := range c.Names() {
		f.Animations = append(f.Animations, c.PolicyFor(name))
	}
	return f
}

// ParseCatalog decodes a YAML catalog document.
//
// Parameters:
//   - data: the YAML bytes
//
// Returns:
//   - Catalog: the decoded and validated catalog
//   - error: an error if decoding or validation fails
func ParseCatalog(data []byte) (Catalog, error) {
	var f CatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return f.Build()
}

// LoadCatalog reads and decodes a YAML catalog file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Catalog: the decoded and validated catalog
//   - error: an error if the file cannot be read, decoded or validated
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %q: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}
