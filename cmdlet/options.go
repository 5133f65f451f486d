package cmdlet

import (
	"go.uber.org/zap"

	"github.com/utmo/cmdletdi/di"
)

// Option configures a Cmdlet.
type Option func(*options)

type options struct {
	log   *zap.Logger
	id    string
	hooks any
}

// WithLogger sets the logger used for stage and injection events.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithInvocationID overrides the generated invocation id.
func WithInvocationID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithHooks sets explicit hooks. Non-nil slots take precedence over hooks
// discovered from the target's methods.
//
// Option is not generic, so T is checked when the cmdlet is created: New
// returns ErrHooksMismatch when T differs from the cmdlet's target type.
func WithHooks[T any](h Hooks[T]) Option {
	return func(o *options) { o.hooks = h }
}

// loggedResolver logs every request the injection pass makes.
type loggedResolver struct {
	next di.Resolver
	log  *zap.Logger
}

func withLogging(r di.Resolver, log *zap.Logger) di.Resolver {
	if r == nil {
		return nil
	}
	return loggedResolver{next: r, log: log}
}

func (r loggedResolver) Resolve(req di.Request) (any, error) {
	v, err := r.next.Resolve(req)
	if err != nil {
		r.log.Debug("resolve failed", zap.Stringer("request", req), zap.Error(err))
		return nil, err
	}
	r.log.Debug("resolved", zap.Stringer("request", req))
	return v, nil
}
