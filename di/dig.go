package di

import (
	"reflect"
	"strconv"

	"go.uber.org/dig"
)

var digInType = reflect.TypeOf(dig.In{})

// DigResolver resolves requests from a go.uber.org/dig container.
//
// Unnamed requests invoke a function taking the requested type; named
// requests invoke a function taking a dig.In parameter object whose single
// field carries a `name` tag. dig treats an empty name as unnamed.
type DigResolver struct {
	c *dig.Container
}

func NewDigResolver(c *dig.Container) *DigResolver {
	return &DigResolver{c: c}
}

// Container returns the underlying dig container.
func (r *DigResolver) Container() *dig.Container { return r.c }

// Resolve implements Resolver. Container errors are returned unchanged.
func (r *DigResolver) Resolve(req Request) (any, error) {
	if r == nil || r.c == nil {
		return nil, ErrNilResolver
	}
	if req.Type == nil {
		return nil, NotFoundError{Request: req}
	}

	var out any
	if !req.Named || req.Name == "" {
		fn := reflect.MakeFunc(
			reflect.FuncOf([]reflect.Type{req.Type}, nil, false),
			func(args []reflect.Value) []reflect.Value {
				out = args[0].Interface()
				return nil
			},
		)
		if err := r.c.Invoke(fn.Interface()); err != nil {
			return nil, err
		}
		return out, nil
	}

	param := reflect.StructOf([]reflect.StructField{
		{Name: "In", Type: digInType, Anonymous: true},
		{Name: "Value", Type: req.Type, Tag: reflect.StructTag(`name:` + strconv.Quote(req.Name))},
	})
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{param}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			out = args[0].Field(1).Interface()
			return nil
		},
	)
	if err := r.c.Invoke(fn.Interface()); err != nil {
		return nil, err
	}
	return out, nil
}
