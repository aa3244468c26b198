package helper

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicateHelper is returned when a helper name is already bound
	ErrDuplicateHelper = errors.New("duplicate helper")

	// ErrUnknownHelper is returned when a helper name is not bound
	ErrUnknownHelper = errors.New("unknown helper")
)

// Func is a helper callable. Arguments are passed through untouched and the
// result (or error) is returned verbatim to the caller.
type Func func(args ...any) (any, error)

// Registry holds the helpers associated with one view
type Registry struct {
	funcs map[string]Func
	mu    sync.RWMutex
}

// NewRegistry creates a registry seeded with the given helpers
func NewRegistry(initial map[string]Func) *Registry {
	r := &Registry{
		funcs: make(map[string]Func, len(initial)),
	}
	for name, fn := range initial {
		if name == "" || fn == nil {
			continue
		}
		r.funcs[name] = fn
	}
	return r
}

// Add binds name to fn. It fails if name is already bound.
func (r *Registry) Add(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("helper name is required")
	}
	if fn == nil {
		return fmt.Errorf("helper %q: function is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.funcs[name]; ok {
		return fmt.Errorf("%w: the function %q is already associated with the template", ErrDuplicateHelper, name)
	}
	r.funcs[name] = fn
	return nil
}

// Remove unbinds name. It fails if name is not bound.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.funcs[name]; !ok {
		return unknown(name)
	}
	delete(r.funcs, name)
	return nil
}

// Invoke calls the helper bound to name with args
func (r *Registry) Invoke(name string, args ...any) (any, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()

	if !ok {
		return nil, unknown(name)
	}
	return fn(args...)
}

// MergeDefaults overlays extra on top of the registry. Existing names are
// replaced silently.
func (r *Registry) MergeDefaults(extra map[string]Func) {
	if len(extra) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for name, fn := range extra {
		if name == "" || fn == nil {
			continue
		}
		r.funcs[name] = fn
	}
}

// Has reports whether name is bound
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.funcs[name]
	return ok
}

// Names returns the bound helper names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound helpers
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}

func unknown(name string) error {
	return fmt.Errorf("%w: the function %q is not associated with the template", ErrUnknownHelper, name)
}
