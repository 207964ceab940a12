package search

import (
	"context"
	"fmt"

	"github.com/exposurescan/exposurescan/internal/model"
)

// Provider is the uniform search capability over one external source.
//
// Implementations must return candidates in source rank order and surface
// failures as errors; they must never panic across this boundary. A nil
// error with zero candidates is a valid outcome.
type Provider interface {
	// Name returns the provider's registry name (e.g. "google").
	Name() string

	// Search runs one query and returns up to pages result pages worth of
	// candidates. Implementations that do not paginate may ignore pages.
	Search(ctx context.Context, query string, pages int) ([]model.Candidate, error)
}

// Registry holds providers in registration order.
//
// Design decision: We keep an ordered slice next to the name index
// because merge order in the Aggregator is defined as registration order,
// and map iteration would make it nondeterministic.
type Registry struct {
	providers []Provider
	byName    map[string]Provider
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Provider)}
}

// Register adds a provider. Registering a name twice replaces the earlier
// provider but keeps its original position.
func (r *Registry) Register(p Provider) {
	if _, exists := r.byName[p.Name()]; exists {
		for i, existing := range r.providers {
			if existing.Name() == p.Name() {
				r.providers[i] = p
				break
			}
		}
	} else {
		r.providers = append(r.providers, p)
	}
	r.byName[p.Name()] = p
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Select returns the named providers in registration order. Unknown names
// return an error; selecting none returns an empty slice.
func (r *Registry) Select(names []string) ([]Provider, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := r.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
		}
		wanted[name] = true
	}

	selected := make([]Provider, 0, len(names))
	for _, p := range r.providers {
		if wanted[p.Name()] {
			selected = append(selected, p)
		}
	}
	return selected, nil
}

// Names returns all registered provider names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}
