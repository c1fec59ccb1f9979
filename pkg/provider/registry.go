package provider

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is a read only index of adapters by name
type Registry struct {
	byName map[string]Adapter
}

func NewRegistry(adapters ...Adapter) (Registry, error) {
	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		if a == nil {
			return Registry{}, fmt.Errorf("adapter cannot be nil")
		}
		name := strings.ToLower(strings.TrimSpace(a.Identity().Name))
		if name == "" {
			return Registry{}, fmt.Errorf("adapter name cannot be empty")
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("duplicate adapter %q", name)
		}
		byName[name] = a
	}
	return Registry{byName: byName}, nil
}

// Get looks up an adapter by name, case-insensitively
func (r Registry) Get(name string) (Adapter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if a, ok := r.byName[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("unsupported provider %q, expected one of %s", name, strings.Join(r.Names(), ", "))
}

// Names returns the registered adapter names sorted alphabetically
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
