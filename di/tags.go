package di

import (
	"reflect"
	"strings"

	"go.uber.org/multierr"
)

// TagKey is the struct tag FromTags reads.
const TagKey = "inject"

// FromTags builds member descriptors for T from `inject` struct tags.
//
// Tag forms:
//
//	Log   *zap.Logger `inject:""`        // by type only
//	Store Store       `inject:"cache"`   // named
//	Blank Store       `inject:",named"`  // named with the empty string
//
// Fields of embedded structs, held by value or by pointer, are included and
// keep their declaring type as owner. A nil embedded pointer is not allocated:
// applying a member behind it reports misuse. Reflection runs here, once, at composition time; the returned members
// are assigned through precomputed field indexes. Every tagged field that
// cannot receive a value is reported as a MarkerMisuseError.
func FromTags[T any]() ([]Member[T], error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, MarkerMisuseError{Owner: t.String(), Reason: "owner is not a struct"}
	}

	var (
		members []Member[T]
		errs    error
	)
	walkTagged(t, nil, func(owner reflect.Type, field reflect.StructField, index []int) {
		tag := field.Tag.Get(TagKey)
		misuse := func(reason string) {
			errs = multierr.Append(errs, MarkerMisuseError{Owner: owner.String(), Member: field.Name, Reason: reason})
		}

		marker, err := parseTag(tag)
		if err != "" {
			misuse(err)
			return
		}
		if !field.IsExported() {
			misuse("unexported field")
			return
		}

		fieldType := field.Type
		members = append(members, Member[T]{
			owner:  owner.String(),
			name:   field.Name,
			typ:    fieldType,
			marker: marker,
			assign: func(target *T, value any) error {
				v := reflect.ValueOf(value)
				if !v.IsValid() || !v.Type().AssignableTo(fieldType) {
					return errNotAssignable
				}
				field, err := reflect.ValueOf(target).Elem().FieldByIndexErr(index)
				if err != nil {
					return errNilEmbedded
				}
				field.Set(v)
				return nil
			},
		})
	})
	if errs != nil {
		return nil, errs
	}
	return members, nil
}

// MustFromTags is FromTags that panics on misuse.
func MustFromTags[T any]() []Member[T] {
	m, err := FromTags[T]()
	if err != nil {
		panic(err)
	}
	return m
}

// walkTagged visits tagged fields of t depth first, descending into untagged
// embedded structs and struct pointers. path holds the struct types being
// walked so self-embedding pointers terminate.
func walkTagged(t reflect.Type, prefix []int, visit func(owner reflect.Type, field reflect.StructField, index []int)) {
	walkTaggedPath(t, prefix, map[reflect.Type]bool{t: true}, visit)
}

func walkTaggedPath(t reflect.Type, prefix []int, path map[reflect.Type]bool, visit func(owner reflect.Type, field reflect.StructField, index []int)) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if _, tagged := field.Tag.Lookup(TagKey); tagged {
			visit(t, field, index)
			continue
		}
		if !field.Anonymous {
			continue
		}

		embedded := field.Type
		if embedded.Kind() == reflect.Pointer {
			embedded = embedded.Elem()
		}
		if embedded.Kind() != reflect.Struct || path[embedded] {
			continue
		}
		path[embedded] = true
		walkTaggedPath(embedded, index, path, visit)
		delete(path, embedded)
	}
}

func parseTag(tag string) (Marker, string) {
	name, opts, hasOpts := strings.Cut(tag, ",")
	if !hasOpts {
		if name == "" {
			return Inject(), ""
		}
		return InjectNamed(name), ""
	}
	if opts != "named" {
		return Marker{}, "unknown tag option " + opts
	}
	return InjectNamed(name), ""
}
