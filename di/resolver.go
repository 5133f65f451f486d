package di

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Resolver produces a value for a requested type and optional name.
//
// It is the only capability the injection pass needs from a container.
// Implementations return an error (typically NotFoundError) when no
// registration matches.
type Resolver interface {
	Resolve(req Request) (any, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(req Request) (any, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(req Request) (any, error) { return f(req) }

// MapResolver is a simple in-memory Resolver.
//
// Unnamed values are keyed by type; named values by name. An unnamed request
// for an interface type falls back to the single registered value that
// implements it. It is safe for concurrent use.
type MapResolver struct {
	mu     sync.RWMutex
	byType map[reflect.Type]any
	byName map[string][]any
}

func NewMapResolver() *MapResolver {
	return &MapResolver{
		byType: map[reflect.Type]any{},
		byName: map[string][]any{},
	}
}

// Provide stores value under its dynamic type and returns the resolver for chaining.
// A nil value is ignored.
func (r *MapResolver) Provide(value any) *MapResolver {
	if value == nil {
		return r
	}
	return r.provideType(reflect.TypeOf(value), value)
}

// ProvideAs stores value under the declared type D, which is usually an interface.
// A nil value is ignored.
func ProvideAs[D any](r *MapResolver, value D) *MapResolver {
	if any(value) == nil {
		return r
	}
	return r.provideType(reflect.TypeFor[D](), value)
}

// ProvideNamed stores value under name. The same name may hold values of
// different types; a named request picks the one assignable to its type.
func (r *MapResolver) ProvideNamed(name string, value any) *MapResolver {
	if value == nil {
		return r
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = append(r.byName[name], value)
	return r
}

func (r *MapResolver) provideType(t reflect.Type, value any) *MapResolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[t] = value
	return r
}

// Resolve implements Resolver and converts panics into errors.
func (r *MapResolver) Resolve(req Request) (val any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			err = fmt.Errorf("%w: %v", ErrResolverPanic, rec)
		}
	}()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if req.Type == nil {
		return nil, NotFoundError{Request: req}
	}
	if req.Named {
		return pickAssignable(req, r.byName[req.Name])
	}
	if v, ok := r.byType[req.Type]; ok {
		return v, nil
	}
	if req.Type.Kind() != reflect.Interface {
		return nil, NotFoundError{Request: req}
	}

	candidates := make([]any, 0, 1)
	for _, v := range r.byType {
		candidates = append(candidates, v)
	}
	return pickAssignable(req, candidates)
}

// MustResolve returns the value or panics with the resolution error.
// Useful in examples/tests where missing registrations should fail fast.
func (r *MapResolver) MustResolve(req Request) any {
	v, err := r.Resolve(req)
	if err != nil {
		panic(err)
	}
	return v
}

func pickAssignable(req Request, values []any) (any, error) {
	var matches []any
	for _, v := range values {
		if v != nil && reflect.TypeOf(v).AssignableTo(req.Type) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return nil, NotFoundError{Request: req}
	case 1:
		return matches[0], nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, reflect.TypeOf(m).String())
	}
	sort.Strings(names)
	return nil, AmbiguousError{Request: req, Candidates: names}
}
