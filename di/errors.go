package di

import (
	"errors"
	"strconv"
)

var (
	// ErrNilTarget is returned when a plan is applied to a nil instance.
	ErrNilTarget = errors.New("di: nil injection target")

	// ErrNilResolver is returned when a plan with at least one member is applied
	// without a resolver.
	ErrNilResolver = errors.New("di: nil resolver")

	// ErrResolverPanic is returned if a resolver implementation panics internally.
	ErrResolverPanic = errors.New("di: panic during Resolve")

	// ErrResolution matches every ResolutionError via errors.Is.
	ErrResolution = errors.New("di: resolution failed")

	// ErrMarkerMisuse matches every MarkerMisuseError via errors.Is.
	ErrMarkerMisuse = errors.New("di: marker misuse")
)

// NotFoundError is returned by resolvers when no registration matches a request.
type NotFoundError struct{ Request Request }

// Error implements the error interface.
func (e NotFoundError) Error() string {
	// Example: di: no registration for *zap.Logger
	return "di: no registration for " + e.Request.String()
}

// AmbiguousError is returned when more than one registration satisfies a request.
type AmbiguousError struct {
	Request Request

	// Candidates holds the dynamic types of the matching registrations.
	Candidates []string
}

// Error implements the error interface.
func (e AmbiguousError) Error() string {
	msg := "di: ambiguous registration for " + e.Request.String() + " ("
	for i, c := range e.Candidates {
		if i > 0 {
			msg += ", "
		}
		msg += c
	}
	return msg + ")"
}

// ResolutionError reports that the resolver could not produce a value for a
// tagged member during injection. It wraps the resolver's own error.
type ResolutionError struct {
	// Owner is the declaring type of the member.
	Owner string

	// Member is the member name.
	Member string

	Request Request
	Err     error
}

// Error implements the error interface.
func (e ResolutionError) Error() string {
	// Example: di: resolve greet.Greeter.Store (greet.Store name "cache"): di: no registration for ...
	msg := "di: resolve " + e.Owner + "." + e.Member + " (" + e.Request.String() + ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the resolver error.
func (e ResolutionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrResolution.
func (e ResolutionError) Is(target error) bool { return target == ErrResolution }

// MarkerMisuseError reports a marker applied to a member that cannot receive an
// injected value: an unsupported member kind, an incompatible declared type, or
// an invalid descriptor.
type MarkerMisuseError struct {
	Owner  string
	Member string
	Reason string
}

// Error implements the error interface.
func (e MarkerMisuseError) Error() string {
	// Example: di: marker misuse on greet.Greeter.store: unexported field
	target := e.Owner
	if e.Member != "" {
		target += "." + e.Member
	}
	return "di: marker misuse on " + target + ": " + e.Reason
}

// Is reports whether target is ErrMarkerMisuse.
func (e MarkerMisuseError) Is(target error) bool { return target == ErrMarkerMisuse }

func duplicateMemberReason(name string) string {
	return "duplicate member " + strconv.Quote(name)
}
