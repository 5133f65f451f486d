// Package cmdletdi adds dependency injection and lifecycle hooks to cmdlets.
//
// The repository is split into small packages:
//
//   - di: injection markers, member descriptors, plans and resolvers
//     (a map resolver and a go.uber.org/dig adapter)
//   - cmdlet: the lifecycle base that injects a plan at BeginProcessing and
//     runs hooks in a fixed order
//   - host: a reference runtime that drives a cmdlet over a record stream
//   - config, logging: YAML configuration and zap loggers for hosts
//   - cmd/cmdletgen: generates static plans from *.inject.json specs
//   - examples/greet: an end-to-end example wired through dig
//
// Plans are declared explicitly, usually generated, and validated once when
// they are built. Nothing is discovered by scanning types at injection time.
package cmdletdi
