// ABOUTME: Package documentation for the tracing arena collector
// ABOUTME: Describes the allocation, rooting and mark-sweep model

// Package arena implements an embeddable, stop-the-world, mark-and-sweep
// collector for cyclic object graphs.
//
// Values are allocated into an Arena and referred to through typed Handles.
// A value reports the handles it holds by implementing Tracer. Collect
// reclaims every allocation that is not reachable from the root set, empties
// the indirection cell shared by all of that allocation's handles, and runs
// its Finalize method (if any) exactly once.
//
// # Concurrency
//
// An Arena is not safe for concurrent use. Allocation, rooting and
// collection must be serialised by the caller.
//
// # Aliasing
//
// Every clone of a Handle observes the same value. GetMut on two clones
// returns the same pointer; coordinating writers is the caller's job.
package arena
