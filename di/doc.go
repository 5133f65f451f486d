// Package di populates tagged members of an instance from a resolver.
//
// Injectable members are described up front, not discovered during injection:
//
//   - Marker carries the optional resolution name. Inject() resolves by type
//     only; InjectNamed(name) asks for a named registration ("" is a valid,
//     distinct name).
//   - Member[T] binds one member of T to a requested type and a marker. Members
//     are declared with Field, lifted from embedded types with Embedded, or
//     derived once from `inject` struct tags with FromTags.
//   - PlanBuilder[T] collects members, lets names be rewritten (Rename,
//     Member.WithName) and validates everything in Build.
//   - Plan[T].Apply asks a Resolver for each member in declaration order and
//     assigns the result. The first failure stops the pass.
//
// Resolver is the single capability required from a container. MapResolver is
// an in-memory implementation; DigResolver adapts a go.uber.org/dig container.
//
// Errors
//
//   - ResolutionError (errors.Is ErrResolution): the resolver could not produce
//     a value. It wraps the resolver's own error.
//   - MarkerMisuseError (errors.Is ErrMarkerMisuse): a member cannot receive the
//     value, or its descriptor is invalid.
//
// Example
//
//	plan := di.NewPlan(
//		di.Field("Log", func(c *Greeter, v *zap.Logger) { c.Log = v }),
//		di.Field("Store", func(c *Greeter, v Store) { c.Store = v }).WithName("cache"),
//	).MustBuild()
//
//	if err := plan.Apply(resolver, greeter); err != nil {
//		// fatal configuration error
//	}
package di
