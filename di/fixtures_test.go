package di_test

import (
	"github.com/utmo/cmdletdi/di"
)

type Logger struct {
	Level string
}

type Store interface {
	Get(key string) (string, bool)
}

type MemStore struct {
	items map[string]string
}

func (s *MemStore) Get(key string) (string, bool) {
	v, ok := s.items[key]
	return v, ok
}

type Command struct {
	Log   *Logger
	Store Store
}

func commandPlan() *di.PlanBuilder[Command] {
	return di.NewPlan(
		di.Field("Log", func(c *Command, v *Logger) { c.Log = v }),
		di.Field("Store", func(c *Command, v Store) { c.Store = v }).WithName("cache"),
	)
}

// recordingResolver records every request and delegates to next.
type recordingResolver struct {
	next     di.Resolver
	requests []di.Request
}

func (r *recordingResolver) Resolve(req di.Request) (any, error) {
	r.requests = append(r.requests, req)
	return r.next.Resolve(req)
}
