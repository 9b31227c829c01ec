package contentkind

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry maps content kinds to their table/column bindings, loaded from
// the embedded YAML file at startup.
type Registry struct {
	mappings map[Kind]*Mapping
	order    []Kind
	mu       sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded kind mappings.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/kinds.yaml")
	if err != nil {
		return nil, fmt.Errorf("read kinds.yaml: %w", err)
	}

	var file kindFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal kinds.yaml: %w", err)
	}
	if len(file.Kinds) == 0 {
		return nil, fmt.Errorf("kinds.yaml defines no kinds")
	}

	r := &Registry{mappings: make(map[Kind]*Mapping)}
	for i := range file.Kinds {
		m := &file.Kinds[i]
		if m.BaseTable == "" || m.ShareTable == "" || m.ShareFK == "" || m.TagTable == "" || m.TagFK == "" {
			return nil, fmt.Errorf("kind %q: incomplete mapping", m.Kind)
		}
		if _, dup := r.mappings[m.Kind]; dup {
			return nil, fmt.Errorf("kind %q: duplicate mapping", m.Kind)
		}
		r.mappings[m.Kind] = m
		r.order = append(r.order, m.Kind)
	}

	return r, nil
}

// Get returns the mapping for a kind.
func (r *Registry) Get(kind Kind) (*Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappings[kind]
	if !ok {
		return nil, fmt.Errorf("unknown content kind: %s", kind)
	}
	return m, nil
}

// Parse validates a raw kind string from a request path.
func (r *Registry) Parse(raw string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.mappings[Kind(raw)]; !ok {
		return "", fmt.Errorf("unknown content kind: %s", raw)
	}
	return Kind(raw), nil
}

// Kinds returns all kinds in the order defined by the YAML file.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}
