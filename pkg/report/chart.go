package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders s as an HTML line chart of output power against input
// power, one line per saturation intensity.
func WriteChart(w io.Writer, s *Series) error {
	x := make([]string, len(s.Powers))
	for i, p := range s.Powers {
		x[i] = strconv.Itoa(p)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Gaussian Beam: " + s.Laser.OutputFile,
			Width:     "100%",
			Height:    "720px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: s.Laser.OutputFile,
			Subtitle: fmt.Sprintf("CO2 via %s, %skPa, gain %d",
				s.Laser.Isotope, s.Laser.DischargePressure, s.Laser.SmallSignalGain),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Pin (W)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Pout (W)"}),
	)
	line.SetXAxis(x)

	for _, sat := range s.Sats {
		outs := s.Output[sat]
		data := make([]opts.LineData, len(outs))
		for i, v := range outs {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(strconv.Itoa(sat), data)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
