package di

import (
	"errors"
	"reflect"
)

var (
	errNotAssignable = errors.New("resolved value is not assignable")
	errNilEmbedded   = errors.New("embedded owner is nil")
)

// Member describes one injectable member of an owner type T.
//
// Members are declared statically with Field (or discovered once from struct
// tags with FromTags) and collected into a Plan. Nothing is scanned at
// injection time.
type Member[T any] struct {
	owner  string
	name   string
	typ    reflect.Type
	marker Marker
	assign func(target *T, value any) error
}

// Field declares a member of T that receives a value of type D through bind.
//
// The member starts unnamed; use WithName to request a named registration.
//
// Example:
//
//	di.Field("Log", func(c *Greeter, v *zap.Logger) { c.Log = v })
func Field[T any, D any](member string, bind func(target *T, dep D)) Member[T] {
	m := Member[T]{
		owner:  typeName[T](),
		name:   member,
		typ:    reflect.TypeFor[D](),
		marker: Inject(),
	}
	if bind != nil {
		m.assign = func(target *T, value any) error {
			dep, ok := value.(D)
			if !ok {
				return errNotAssignable
			}
			bind(target, dep)
			return nil
		}
	}
	return m
}

// Embedded lifts members declared on an embedded type E into T. get returns the
// embedded value inside a T. The lifted members keep E as their declaring type.
func Embedded[T any, E any](get func(target *T) *E, members ...Member[E]) []Member[T] {
	out := make([]Member[T], 0, len(members))
	for _, em := range members {
		lifted := Member[T]{owner: em.owner, name: em.name, typ: em.typ, marker: em.marker}
		if get != nil && em.assign != nil {
			assign := em.assign
			lifted.assign = func(target *T, value any) error {
				inner := get(target)
				if inner == nil {
					return errNilEmbedded
				}
				return assign(inner, value)
			}
		}
		out = append(out, lifted)
	}
	return out
}

// WithName returns a copy of m whose marker requests the named registration.
func (m Member[T]) WithName(name string) Member[T] {
	m.marker = m.marker.WithName(name)
	return m
}

// WithMarker returns a copy of m carrying marker.
func (m Member[T]) WithMarker(marker Marker) Member[T] {
	m.marker = marker
	return m
}

// Owner returns the declaring type of the member.
func (m Member[T]) Owner() string { return m.owner }

// Name returns the member name.
func (m Member[T]) Name() string { return m.name }

// Type returns the requested value type.
func (m Member[T]) Type() reflect.Type { return m.typ }

// Marker returns the member's injection marker.
func (m Member[T]) Marker() Marker { return m.marker }

// Request returns what the resolver is asked for when m is injected.
func (m Member[T]) Request() Request { return m.marker.request(m.typ) }

func (m Member[T]) misuse(reason string) MarkerMisuseError {
	return MarkerMisuseError{Owner: m.owner, Member: m.name, Reason: reason}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
