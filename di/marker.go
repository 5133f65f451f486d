package di

import (
	"reflect"
	"strconv"
)

// Marker tags a member as requiring injection and optionally carries the name
// used to pick a named registration in the resolver.
//
// A zero Marker is unnamed: the member is resolved by type only. A marker built
// with InjectNamed("") is named with the empty string, which resolvers see as a
// distinct request.
type Marker struct {
	name  string
	named bool
}

// Inject returns an unnamed marker.
func Inject() Marker { return Marker{} }

// InjectNamed returns a marker carrying name verbatim.
func InjectNamed(name string) Marker { return Marker{name: name, named: true} }

// WithName returns a copy of m carrying name.
func (m Marker) WithName(name string) Marker {
	m.name = name
	m.named = true
	return m
}

// Name returns the resolution name and whether one was set.
func (m Marker) Name() (string, bool) { return m.name, m.named }

// Named reports whether the marker carries a name (possibly empty).
func (m Marker) Named() bool { return m.named }

func (m Marker) String() string {
	if !m.named {
		return "inject"
	}
	return "inject(" + strconv.Quote(m.name) + ")"
}

func (m Marker) request(t reflect.Type) Request {
	return Request{Type: t, Name: m.name, Named: m.named}
}

// Request is what a Resolver is asked for: a value type and an optional name.
type Request struct {
	Type  reflect.Type
	Name  string
	Named bool
}

// RequestFor returns an unnamed request for D.
func RequestFor[D any]() Request { return Request{Type: reflect.TypeFor[D]()} }

// NamedRequestFor returns a named request for D.
func NamedRequestFor[D any](name string) Request {
	return Request{Type: reflect.TypeFor[D](), Name: name, Named: true}
}

func (r Request) String() string {
	s := "<nil>"
	if r.Type != nil {
		s = r.Type.String()
	}
	if r.Named {
		s += " name " + strconv.Quote(r.Name)
	}
	return s
}
