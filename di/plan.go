package di

import (
	"errors"

	"go.uber.org/multierr"
)

// PlanBuilder collects member descriptors for an owner type T.
//
// Descriptors may still be renamed while they sit in the builder; Build
// finalizes them into an immutable Plan.
type PlanBuilder[T any] struct {
	members []Member[T]
	unknown []string
}

// NewPlan starts a plan for T with the given members.
func NewPlan[T any](members ...Member[T]) *PlanBuilder[T] {
	b := &PlanBuilder[T]{}
	return b.Add(members...)
}

// Add appends members in declaration order and returns the builder for chaining.
func (b *PlanBuilder[T]) Add(members ...Member[T]) *PlanBuilder[T] {
	b.members = append(b.members, members...)
	return b
}

// Rename sets the resolution name of the member called member. It is the
// builder-time replacement for mutating a marker after declaration.
// Renaming an undeclared member is reported by Build.
func (b *PlanBuilder[T]) Rename(member, name string) *PlanBuilder[T] {
	for i := range b.members {
		if b.members[i].name == member {
			b.members[i] = b.members[i].WithName(name)
			return b
		}
	}
	b.unknown = append(b.unknown, member)
	return b
}

// Build validates every descriptor and returns the finalized plan.
//
// All problems are reported together; each one is a MarkerMisuseError:
//   - empty member name
//   - missing bind function
//   - missing requested type
//   - the same member declared twice on one owner
//   - a Rename of an undeclared member
func (b *PlanBuilder[T]) Build() (*Plan[T], error) {
	var errs error
	for _, name := range b.unknown {
		errs = multierr.Append(errs, MarkerMisuseError{Owner: typeName[T](), Member: name, Reason: "rename of undeclared member"})
	}
	seen := make(map[string]struct{}, len(b.members))

	for _, m := range b.members {
		if m.name == "" {
			errs = multierr.Append(errs, m.misuse("empty member name"))
			continue
		}
		key := m.owner + "." + m.name
		if _, dup := seen[key]; dup {
			errs = multierr.Append(errs, m.misuse(duplicateMemberReason(m.name)))
			continue
		}
		seen[key] = struct{}{}

		if m.typ == nil {
			errs = multierr.Append(errs, m.misuse("no requested type"))
		}
		if m.assign == nil {
			errs = multierr.Append(errs, m.misuse("nil bind function"))
		}
	}
	if errs != nil {
		return nil, errs
	}

	members := make([]Member[T], len(b.members))
	copy(members, b.members)
	return &Plan[T]{owner: typeName[T](), members: members}, nil
}

// MustBuild returns the plan or panics on invalid descriptors.
func (b *PlanBuilder[T]) MustBuild() *Plan[T] {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// Plan is the finalized, read-only set of injectable members for T.
// A nil *Plan has no members.
type Plan[T any] struct {
	owner   string
	members []Member[T]
}

// Len returns the number of members.
func (p *Plan[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.members)
}

// Members returns a copy of the members in declaration order.
func (p *Plan[T]) Members() []Member[T] {
	if p == nil {
		return nil
	}
	out := make([]Member[T], len(p.members))
	copy(out, p.members)
	return out
}

// Apply resolves every member and assigns it on target, in declaration order.
//
// It stops at the first failure: a resolver error is returned as a
// ResolutionError, a value the member cannot hold as a MarkerMisuseError.
// Members after the failing one are left untouched. A plan without members
// never calls the resolver.
func (p *Plan[T]) Apply(r Resolver, target *T) error {
	if target == nil {
		return ErrNilTarget
	}
	if p.Len() == 0 {
		return nil
	}
	if r == nil {
		return ErrNilResolver
	}

	for _, m := range p.members {
		req := m.Request()
		val, err := r.Resolve(req)
		if err != nil {
			return ResolutionError{Owner: m.owner, Member: m.name, Request: req, Err: err}
		}
		if err := m.assign(target, val); err != nil {
			if errors.Is(err, errNotAssignable) {
				return m.misuse(err.Error() + " to " + m.typ.String())
			}
			return m.misuse(err.Error())
		}
	}
	return nil
}
