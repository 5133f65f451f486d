package cmdlet

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/utmo/cmdletdi/di"
)

// Cmdlet runs a target through the fixed lifecycle
//
//	BeginProcessing -> ProcessRecord* -> EndProcessing
//
// with StopProcessing accepted at any point. The outer stage
// methods cannot be replaced; only the hook slots are customizable.
//
// BeginProcessing always runs PreProcess, then injects every member of the
// plan, then Begin. An injection failure aborts Begin before the Begin hook.
//
// Stage methods are meant to be called sequentially by one host. State
// bookkeeping is locked so that a Stop issued from another goroutine is safe,
// but hooks themselves are not serialized against each other.
type Cmdlet[T any] struct {
	target *T
	plan   *di.Plan[T]
	hooks  Hooks[T]
	id     string
	log    *zap.Logger

	mu       sync.Mutex
	resolver di.Resolver
	state    State
	records  int
}

// New wraps target. Hooks discovered from the optional interfaces on *T are
// used unless overridden slot by slot with WithHooks. plan may be nil for a
// cmdlet without injectable members.
func New[T any](target *T, plan *di.Plan[T], resolver di.Resolver, opts ...Option) (*Cmdlet[T], error) {
	if target == nil {
		return nil, di.ErrNilTarget
	}

	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	hooks := HooksFrom(target)
	if o.hooks != nil {
		explicit, ok := o.hooks.(Hooks[T])
		if !ok {
			return nil, fmt.Errorf("%w: hooks %T do not match target %s", ErrHooksMismatch, o.hooks, reflect.TypeFor[T]())
		}
		hooks = hooks.Override(explicit)
	}

	id := o.id
	if id == "" {
		id = uuid.NewString()
	}

	return &Cmdlet[T]{
		target:   target,
		plan:     plan,
		hooks:    hooks,
		id:       id,
		log:      o.log.With(zap.String("cmdlet", reflect.TypeFor[T]().String()), zap.String("invocation", id)),
		resolver: resolver,
	}, nil
}

// MustNew is New that panics on error.
func MustNew[T any](target *T, plan *di.Plan[T], resolver di.Resolver, opts ...Option) *Cmdlet[T] {
	c, err := New(target, plan, resolver, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Target returns the wrapped instance.
func (c *Cmdlet[T]) Target() *T { return c.target }

// InvocationID identifies this cmdlet instance in logs.
func (c *Cmdlet[T]) InvocationID() string { return c.id }

// State returns the current lifecycle state.
func (c *Cmdlet[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Records returns the number of accepted ProcessRecord calls.
func (c *Cmdlet[T]) Records() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records
}

// UseResolver replaces the resolver. It only has an effect before injection,
// typically from the PreProcess hook.
func (c *Cmdlet[T]) UseResolver(r di.Resolver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolver = r
}

// BeginProcessing runs PreProcess, injects the plan's members, then runs Begin.
func (c *Cmdlet[T]) BeginProcessing(ctx context.Context) (err error) {
	if err := c.enter(StageBegin, Injecting); err != nil {
		return err
	}
	log := c.log.With(zap.Stringer("stage", StageBegin))
	defer func() {
		if err != nil {
			log.Debug("begin failed", zap.Error(err))
			c.settle(Failed)
			return
		}
		c.settle(BegunProcessing)
	}()

	if h := c.hooks.PreProcess; h != nil {
		if err := h(ctx, c); err != nil {
			return err
		}
	}

	c.mu.Lock()
	r := c.resolver
	c.mu.Unlock()

	log.Debug("injecting members", zap.Int("members", c.plan.Len()))
	if err := c.plan.Apply(withLogging(r, log), c.target); err != nil {
		return err
	}

	if h := c.hooks.Begin; h != nil {
		return h(ctx, c.target)
	}
	return nil
}

// ProcessRecord runs the ProcessRecord hook with the host's record.
func (c *Cmdlet[T]) ProcessRecord(ctx context.Context, record any) error {
	if err := c.enter(StageProcess, Processing); err != nil {
		return err
	}

	c.mu.Lock()
	c.records++
	c.mu.Unlock()

	if h := c.hooks.ProcessRecord; h != nil {
		return h(ctx, c.target, record)
	}
	return nil
}

// EndProcessing runs the End hook. The cmdlet is Ended afterwards even if the
// hook fails.
func (c *Cmdlet[T]) EndProcessing(ctx context.Context) error {
	if err := c.enter(StageEnd, Ended); err != nil {
		return err
	}
	c.log.Debug("end", zap.Int("records", c.Records()))

	if h := c.hooks.End; h != nil {
		return h(ctx, c.target)
	}
	return nil
}

// StopProcessing runs the Stop hook on every call, in any state. It does not
// interrupt a running stage and does not trigger Begin or End. Afterwards the
// cmdlet is Stopped and the normal-path stages are refused.
func (c *Cmdlet[T]) StopProcessing(ctx context.Context) error {
	c.mu.Lock()
	prev := c.state
	c.state = Stopped
	c.mu.Unlock()
	c.log.Debug("stop", zap.Stringer("from", prev))

	if h := c.hooks.Stop; h != nil {
		return h(ctx, c.target)
	}
	return nil
}

// enter moves the cmdlet to next if stage is allowed in the current state.
func (c *Cmdlet[T]) enter(stage Stage, next State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.allows(stage) {
		return StageOrderError{Stage: stage, State: c.state}
	}
	c.state = next
	return nil
}

// settle records the outcome of a stage unless the cmdlet was stopped meanwhile.
func (c *Cmdlet[T]) settle(next State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Stopped {
		c.state = next
	}
}
