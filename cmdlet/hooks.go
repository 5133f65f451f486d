package cmdlet

import "context"

// Hooks are the extension points of a cmdlet. Every slot is optional; a nil
// slot is a no-op. The order the slots run in is fixed by Cmdlet.
type Hooks[T any] struct {
	// PreProcess runs first in BeginProcessing, before any member is injected.
	// It may replace the resolver with Cmdlet.UseResolver.
	PreProcess func(ctx context.Context, c *Cmdlet[T]) error

	// Begin runs after every member has been injected.
	Begin func(ctx context.Context, target *T) error

	ProcessRecord func(ctx context.Context, target *T, record any) error
	End           func(ctx context.Context, target *T) error
	Stop          func(ctx context.Context, target *T) error
}

// PreProcessor is implemented by targets that need setup before injection.
type PreProcessor[T any] interface {
	CmdletPreProcessor(ctx context.Context, c *Cmdlet[T]) error
}

// Beginner is implemented by targets with a begin hook.
type Beginner interface {
	BeginCmdletProcessing(ctx context.Context) error
}

// RecordProcessor is implemented by targets that handle records.
type RecordProcessor interface {
	ProcessCmdletRecord(ctx context.Context, record any) error
}

// Ender is implemented by targets with an end hook.
type Ender interface {
	EndCmdletProcessing(ctx context.Context) error
}

// Stopper is implemented by targets with a stop hook.
type Stopper interface {
	StopCmdletProcessing(ctx context.Context) error
}

// HooksFrom builds hooks from the optional interfaces implemented by target.
func HooksFrom[T any](target *T) Hooks[T] {
	var h Hooks[T]
	if target == nil {
		return h
	}

	if p, ok := any(target).(PreProcessor[T]); ok {
		h.PreProcess = p.CmdletPreProcessor
	}
	if b, ok := any(target).(Beginner); ok {
		h.Begin = func(ctx context.Context, _ *T) error { return b.BeginCmdletProcessing(ctx) }
	}
	if p, ok := any(target).(RecordProcessor); ok {
		h.ProcessRecord = func(ctx context.Context, _ *T, record any) error { return p.ProcessCmdletRecord(ctx, record) }
	}
	if e, ok := any(target).(Ender); ok {
		h.End = func(ctx context.Context, _ *T) error { return e.EndCmdletProcessing(ctx) }
	}
	if s, ok := any(target).(Stopper); ok {
		h.Stop = func(ctx context.Context, _ *T) error { return s.StopCmdletProcessing(ctx) }
	}
	return h
}

// Override returns h with every non-nil slot of o replacing the one in h.
func (h Hooks[T]) Override(o Hooks[T]) Hooks[T] {
	if o.PreProcess != nil {
		h.PreProcess = o.PreProcess
	}
	if o.Begin != nil {
		h.Begin = o.Begin
	}
	if o.ProcessRecord != nil {
		h.ProcessRecord = o.ProcessRecord
	}
	if o.End != nil {
		h.End = o.End
	}
	if o.Stop != nil {
		h.Stop = o.Stop
	}
	return h
}
