package agent

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// Registry holds player profiles by ID.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]*Profile),
	}
}

// DefaultRegistry returns a registry with the built-in profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.LoadFromYAML(defaultProfiles); err != nil {
		panic(fmt.Sprintf("built-in profiles: %v", err))
	}
	return r
}

// LoadFromFile loads profiles from a YAML file.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles file: %w", err)
	}
	return r.LoadFromYAML(data)
}

// LoadFromYAML loads a YAML list of profiles. Entries replace profiles with
// the same ID.
func (r *Registry) LoadFromYAML(data []byte) error {
	var list []*Profile
	if err := yaml.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse profiles YAML: %w", err)
	}
	for _, p := range list {
		if p.ID == "" {
			return fmt.Errorf("profile %q has no id", p.Name)
		}
		// catch unknown kinds at load time
		if _, err := New(*p, 1); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range list {
		r.profiles[p.ID] = p
	}
	return nil
}

// Get returns a copy of the profile with the given ID.
func (r *Registry) Get(id string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

// All returns every profile ordered by ID.
func (r *Registry) All() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}
