package gaussian

import "math"

// Beam and integration constants.
// Units:
//   - beamRadius, beamWaist, radialStep, axialStep, wavelength: cm
//   - saturation intensities: W/cm²
const (
	beamRadius = 0.18
	beamWaist  = 0.3
	radialStep = 0.002
	axialStep  = 0.04
	wavelength = 0.0106

	// maxRadius is the outer edge of the radial integration.
	maxRadius = 0.5

	// AxialSamples is the number of axial slices (INCR).
	AxialSamples = 8001

	// gainNormaliser scales the small-signal gain into per-step units.
	gainNormaliser = 32e3

	satMin  = 10000
	satMax  = 25000
	satStep = 1000
)

// Derived values are evaluated at run time in float64 so every rounding step
// happens in IEEE-754 double precision, in the stated order.
var (
	area       = math.Pi * math.Pow(beamRadius, 2)
	rayleigh   = math.Pi * math.Pow(beamWaist, 2) / wavelength
	rayleighSq = rayleigh * rayleigh
	ringFactor = 2 * math.Pi * radialStep
	radiusSq   = math.Pow(beamRadius, 2)
)

// SaturationIntensities returns the fixed trial sweep {10000, 11000, ..., 25000}.
func SaturationIntensities() []int {
	out := make([]int, 0, (satMax-satMin)/satStep+1)
	for s := satMin; s <= satMax; s += satStep {
		out = append(out, s)
	}
	return out
}

// Result is the predicted output of one (input power, saturation intensity) trial.
type Result struct {
	InputPower          int     // W
	OutputPower         float64 // W
	SaturationIntensity int     // W/cm²
	LogRatio            float64 // ln(OutputPower/InputPower)
	Delta               float64 // OutputPower - InputPower, W
}

func newResult(inputPower int, outputPower float64, saturationIntensity int) Result {
	return Result{
		InputPower:          inputPower,
		OutputPower:         outputPower,
		SaturationIntensity: saturationIntensity,
		LogRatio:            math.Log(outputPower / float64(inputPower)),
		Delta:               outputPower - float64(inputPower),
	}
}
