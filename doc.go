// Package urx is a push-based reactive stream library.
//
// An Observable is a blueprint: nothing runs until it is subscribed, at
// which point the producer pushes values, at most one terminal event
// (an error or a completion), to the subscriber. Operators wrap the
// downstream observer and compose into chains; a chain has a single
// consumer unless it is multicast, after which any number of forks can
// observe one upstream execution.
//
// Observables come in two concurrency modes. A local observable delivers
// events synchronously in the call stack that drives the producer and
// keeps operator state unguarded. Calling ToShared marks the chain as
// shared: callbacks may then be invoked from any goroutine and operator
// state is guarded by a mutex. Operator logic is identical in both modes.
//
// Time-aware operators take a Scheduler, an abstraction over "run this
// after a delay" that returns a cancellable handle. GoroutineScheduler is
// the production implementation; the urxtest subpackage has a virtual-time
// scheduler for deterministic tests.
package urx
