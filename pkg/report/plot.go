package report

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SavePlot draws s as output power against input power and saves it to path.
// The image format follows the file extension (.png, .svg, .pdf).
func SavePlot(path string, s *Series) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: CO2 via %s, %skPa, gain %d",
		s.Laser.OutputFile, s.Laser.Isotope, s.Laser.DischargePressure, s.Laser.SmallSignalGain)
	p.X.Label.Text = "Pin (W)"
	p.Y.Label.Text = "Pout (W)"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, sat := range s.Sats {
		outs := s.Output[sat]
		pts := make(plotter.XYs, len(outs))
		for j, v := range outs {
			pts[j] = plotter.XY{X: float64(s.Powers[j]), Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot line %d: %w", sat, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(strconv.Itoa(sat), line)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
