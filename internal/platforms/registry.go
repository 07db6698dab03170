// Package platforms holds the fixed set of judge platforms a question can
// come from. The set is loaded once from an embedded YAML file; anything
// outside it is normalized to "other" on the way in.
package platforms

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/platforms.yaml
var configFiles embed.FS

// Other is the catch-all platform id for unrecognized sources.
const Other = "other"

// Default is the platform applied when a create request omits the field.
const Default = "leetcode"

// Platform describes one judge site.
type Platform struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

// Registry is the loaded platform set, in file order.
type Registry struct {
	platforms []Platform
	byID      map[string]Platform
}

type registryFile struct {
	Platforms []Platform `yaml:"platforms"`
}

// NewRegistry loads the embedded platform file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/platforms.yaml")
	if err != nil {
		return nil, fmt.Errorf("read platforms config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal platforms config: %w", err)
	}
	if len(file.Platforms) == 0 {
		return nil, fmt.Errorf("platforms config is empty")
	}

	r := &Registry{
		platforms: file.Platforms,
		byID:      make(map[string]Platform, len(file.Platforms)),
	}
	for _, p := range file.Platforms {
		r.byID[p.ID] = p
	}
	if _, ok := r.byID[Other]; !ok {
		return nil, fmt.Errorf("platforms config missing %q entry", Other)
	}

	return r, nil
}

// Known reports whether id is a registered platform.
func (r *Registry) Known(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Normalize returns id if registered, the default for an empty value, and
// "other" for anything else.
func (r *Registry) Normalize(id string) string {
	if id == "" {
		return Default
	}
	if r.Known(id) {
		return id
	}
	return Other
}

// Get returns a platform by id.
func (r *Registry) Get(id string) (Platform, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// List returns all platforms in file order.
func (r *Registry) List() []Platform {
	out := make([]Platform, len(r.platforms))
	copy(out, r.platforms)
	return out
}
