package gaussian

import "math"

// Engine integrates the Gaussian-beam saturation model. It is safe for
// concurrent use: the only state is the read-only axial table.
type Engine struct {
	table *AxialTable
}

// New returns an engine bound to the shared axial table.
func New() *Engine {
	return &Engine{table: SharedAxialTable()}
}

// Compute returns one Result per trial saturation intensity, in ascending
// order of saturation intensity.
//
// For every intensity S the beam is split into rings of width radialStep; each
// ring's intensity is propagated through AxialSamples slices:
//
//	I *= 1 + S·g/(S + I) - table[j]
//
// and the ring's contribution I·2π·dr·r is summed into the output power.
// The axial update is a sequential fold and must run in index order.
func (e *Engine) Compute(inputPower int, smallSignalGain float64) []Result {
	sats := SaturationIntensities()
	out := make([]Result, 0, len(sats))

	inputIntensity := float64(2*inputPower) / area
	gainTerm := (smallSignalGain / gainNormaliser) * axialStep

	for _, s := range sats {
		out = append(out, newResult(inputPower, e.outputPower(inputIntensity, gainTerm, float64(s)), s))
	}
	return out
}

func (e *Engine) outputPower(inputIntensity, gainTerm, sat float64) float64 {
	satTerm := sat * gainTerm
	var power float64
	for r := 0.0; r <= maxRadius; r += radialStep {
		intensity := inputIntensity * math.Exp(-2*(r*r)/radiusSq)
		for j := 0; j < AxialSamples; j++ {
			intensity *= 1 + satTerm/(sat+intensity) - e.table[j]
		}
		// The explicit conversion keeps the product rounded before the add,
		// so no target may fuse it into a multiply-add.
		power += float64(intensity * ringFactor * r)
	}
	return power
}
