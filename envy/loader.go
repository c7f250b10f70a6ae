package envy

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Fragment produces a partial configuration from the effective settings.
// The result must be a map[string]any or a []any.
type Fragment func(s Effective) (any, error)

// FragmentRef addresses a fragment: Name is the filename template with the
// placeholder substituted, Path is Name resolved against the config directory.
type FragmentRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Loader turns a fragment reference into a callable fragment.
type Loader interface {
	Load(ref FragmentRef) (Fragment, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ref FragmentRef) (Fragment, error)

// Load calls f(ref).
func (f LoaderFunc) Load(ref FragmentRef) (Fragment, error) {
	return f(ref)
}

// Registry is a Loader backed by fragments compiled into the binary and
// registered under their substituted file name, e.g. "webpack.production.js".
type Registry struct {
	mu        sync.RWMutex
	fragments map[string]Fragment
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fragments: make(map[string]Fragment)}
}

// Register adds a fragment under name. Registering a name twice panics.
func (r *Registry) Register(name string, f Fragment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fragments[name]; exists {
		panic(fmt.Sprintf("fragment with name '%s' already registered", name))
	}
	r.fragments[name] = f
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fragments))
	for name := range r.fragments {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns the fragment registered under ref.Name.
func (r *Registry) Load(ref FragmentRef) (Fragment, error) {
	r.mu.RLock()
	f, ok := r.fragments[ref.Name]
	r.mu.RUnlock()

	if !ok {
		return nil, &FragmentLoadError{Path: ref.Path, Err: ErrFragmentNotFound}
	}
	return f, nil
}

type chain []Loader

// Chain returns a Loader that asks each loader in turn and returns the first
// fragment found. Errors other than ErrFragmentNotFound stop the search.
func Chain(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) Load(ref FragmentRef) (Fragment, error) {
	for _, l := range c {
		f, err := l.Load(ref)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, ErrFragmentNotFound) {
			return nil, err
		}
	}
	return nil, &FragmentLoadError{Path: ref.Path, Err: ErrFragmentNotFound}
}
