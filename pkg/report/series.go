package report

import (
	"github.com/ja7ad/satin/pkg/gaussian"
	"github.com/ja7ad/satin/pkg/laser"
)

// Series keeps one laser's results for the chart and plot sinks, indexed by
// saturation intensity then input power.
type Series struct {
	Laser  laser.Laser
	Powers []int
	Sats   []int
	Output map[int][]float64
}

// NewSeries returns an empty series for l.
func NewSeries(l laser.Laser) *Series {
	return &Series{
		Laser:  l,
		Sats:   gaussian.SaturationIntensities(),
		Output: make(map[int][]float64),
	}
}

// Add appends one input power's block of results.
func (s *Series) Add(results []gaussian.Result) {
	if len(results) == 0 {
		return
	}
	s.Powers = append(s.Powers, results[0].InputPower)
	for _, r := range results {
		s.Output[r.SaturationIntensity] = append(s.Output[r.SaturationIntensity], r.OutputPower)
	}
}
