package recipe

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownRecipe reports a lookup for a name nobody registered.
var ErrUnknownRecipe = errors.New("unknown recipe")

var errDuplicateRecipe = errors.New("duplicate recipe")

// Registry maps recipe names to their descriptions, preserving
// registration order for stable listings.
type Registry struct {
	byName map[string]Recipe
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Recipe)}
}

// Register adds a recipe. Empty names, missing build functions and
// duplicate registrations are rejected.
func (r *Registry) Register(rec Recipe) error {
	if rec.Name == "" {
		return errors.New("empty recipe name")
	}
	if rec.Build == nil {
		return fmt.Errorf("recipe %s: nil build function", rec.Name)
	}
	if _, exists := r.byName[rec.Name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateRecipe, rec.Name)
	}
	r.byName[rec.Name] = rec
	r.order = append(r.order, rec.Name)
	return nil
}

// MustRegister is like Register but panics on error. The built-in
// catalog uses it; a failure there is a programming bug.
func (r *Registry) MustRegister(rec Recipe) {
	if err := r.Register(rec); err != nil {
		panic("recipe registry: " + err.Error())
	}
}

// Lookup returns the recipe registered under name.
func (r *Registry) Lookup(name string) (Recipe, error) {
	rec, ok := r.byName[name]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
	}
	return rec, nil
}

// All returns every recipe in registration order.
func (r *Registry) All() []Recipe {
	out := make([]Recipe, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Groups returns the distinct group names in first-registration order.
func (r *Registry) Groups() []string {
	seen := map[string]bool{}
	var out []string
	for _, name := range r.order {
		g := r.byName[name].Group
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// ByGroup returns the recipes of one group in registration order.
func (r *Registry) ByGroup(group string) []Recipe {
	var out []Recipe
	for _, name := range r.order {
		if rec := r.byName[name]; rec.Group == group {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of registered recipes.
func (r *Registry) Len() int { return len(r.order) }

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry pre-populated with every built-in
// recipe. The same instance is returned on every call.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerFilters(defaultRegistry)
		registerEffects(defaultRegistry)
		registerModulation(defaultRegistry)
		registerDynamics(defaultRegistry)
		registerReverbs(defaultRegistry)
		registerPitch(defaultRegistry)
	})
	return defaultRegistry
}
