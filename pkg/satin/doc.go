// Package satin ties the pieces of a run together: it loads laser descriptors
// and input powers, builds the saturation engine once, and hands one
// Processor.Process call per laser to the scheduler.
//
// Each laser owns exactly one report file (plus the optional chart and plot),
// so concurrent processing needs no locking beyond what the scheduler does.
package satin
