// Package scheduler runs independent units of work under one of two fixed
// policies.
//
// Sequential executes units in order and aborts at the first failure; units
// after the failing one are never started. Concurrent starts every unit on an
// errgroup-managed goroutine (optionally bounded by WithWorkers), waits for
// all of them, and returns errors.Join of every failure. A unit's failure never
// cancels a sibling under Concurrent.
//
// Panics inside a unit are recovered and reported as ErrWorkerFault.
package scheduler
