// Package gaussian predicts CO2 laser output power with a Gaussian-beam
// saturation integral.
//
// For a given input power and small-signal gain, Engine.Compute sweeps a fixed
// set of trial saturation intensities (10000..25000 W/cm² in steps of 1000) and
// integrates the saturated intensity over the beam cross-section (radius 0 to
// 0.5 cm) and along the axis (8001 slices around the beam waist).
//
// The axial correction table is a function of the beam constants only. It is
// built once per process (SharedAxialTable) and shared by every Engine, so
// engines may be used from any number of goroutines without locking.
//
// Results are deterministic: the same inputs produce bit-identical outputs
// regardless of which goroutine computes them.
package gaussian
