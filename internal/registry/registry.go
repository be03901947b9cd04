package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when a name has no registered function.
var ErrNotFound = errors.New("function not found in registry")

// Module is the interface a package implements to contribute functions to a
// registry instance at startup.
type Module interface {
	Register(r *Registry)
}

// Registry is the catalog of callables available to the graph builder for a
// single application instance. The zero value is not usable; call New.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]*Function
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{functions: make(map[string]*Function)}
}

// Register adds a function under its declared name. Registering a name twice
// is an error; use Replace to overwrite deliberately.
func (r *Registry) Register(fn *Function) error {
	if err := fn.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.functions[fn.Name]; exists {
		return fmt.Errorf("function %q already registered", fn.Name)
	}
	r.functions[fn.Name] = fn
	return nil
}

// MustRegister is Register for module init paths, where a duplicate name is
// a programmer error.
func (r *Registry) MustRegister(fn *Function) {
	if err := r.Register(fn); err != nil {
		panic(err)
	}
}

// Replace registers a function, overwriting any existing registration of the
// same name.
func (r *Registry) Replace(fn *Function) error {
	if err := fn.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[fn.Name] = fn
	return nil
}

// Lookup resolves a name to its registered function.
func (r *Registry) Lookup(name string) (*Function, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.functions[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return fn, nil
}

// Describe returns the signature metadata for a registered function.
func (r *Registry) Describe(name string) (Signature, error) {
	fn, err := r.Lookup(name)
	if err != nil {
		return Signature{}, err
	}
	return fn.Signature, nil
}

// Unregister removes a function from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.functions[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	delete(r.functions, name)
	return nil
}

// List returns all registered names in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Signatures returns the metadata of every registered function, ordered by
// name.
func (r *Registry) Signatures() []Signature {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sigs := make([]Signature, 0, len(r.functions))
	for _, fn := range r.functions {
		sigs = append(sigs, fn.Signature)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Name < sigs[j].Name })
	return sigs
}

// Len reports the number of registered functions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.functions)
}
