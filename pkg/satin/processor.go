package satin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/ja7ad/satin/pkg/gaussian"
	"github.com/ja7ad/satin/pkg/laser"
	"github.com/ja7ad/satin/pkg/report"
	"github.com/ja7ad/satin/pkg/util"
)

// Engine computes the saturation sweep for one input power.
type Engine interface {
	Compute(inputPower int, smallSignalGain float64) []gaussian.Result
}

// Processor produces the report files for one laser at a time. A Processor
// holds no per-laser state, so one value may serve many goroutines.
type Processor struct {
	Engine Engine
	OutDir string
	Clock  report.Clock
	Chart  bool // also write <name>.html
	Plot   bool // also write <name>.png
	Log    *slog.Logger
}

// Process runs the engine for every input power, in order, and writes the
// laser's report. The report file is closed on every return path.
func (p *Processor) Process(l laser.Laser, powers []int) (err error) {
	log := p.logger().With("laser", l.String())
	start := time.Now()
	log.Info("laser started", "pressure_kpa", l.DischargePressure.KPa(), "gain", l.SmallSignalGain, "isotope", l.Isotope.String())

	f, err := os.Create(filepath.Join(p.OutDir, l.OutputFile))
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	var series *report.Series
	if p.Chart || p.Plot {
		series = report.NewSeries(l)
	}

	w := report.NewWriter(f, p.Clock)
	if err := w.Header(l); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	var best peak
	gain := float64(l.SmallSignalGain)
	for _, pin := range powers {
		results := p.Engine.Compute(pin, gain)
		if err := w.Rows(results); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		best.observe(results)
		if series != nil {
			series.Add(results)
		}
	}
	if err := w.Footer(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if err := p.writeSeries(series); err != nil {
		return err
	}

	log.Info("laser finished",
		"elapsed", util.Seconds(time.Since(start)),
		"rows", best.rows,
		"peak_pout", util.FmtFloat(best.result.OutputPower),
		"peak_pin", best.result.InputPower,
		"peak_sat", best.result.SaturationIntensity)
	return nil
}

func (p *Processor) writeSeries(s *report.Series) error {
	if s == nil {
		return nil
	}
	base := filepath.Join(p.OutDir, strings.TrimSuffix(s.Laser.OutputFile, ".out"))
	if p.Chart {
		if err := writeChartFile(base+".html", s); err != nil {
			return err
		}
	}
	if p.Plot {
		if err := report.SavePlot(base+".png", s); err != nil {
			return err
		}
	}
	return nil
}

func writeChartFile(path string, s *report.Series) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close chart: %w", cerr)
		}
	}()
	return report.WriteChart(f, s)
}

func (p *Processor) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

// peak tracks the highest output power seen across a laser's sweep.
type peak struct {
	result gaussian.Result
	rows   int
	seen   bool
}

func (pk *peak) observe(results []gaussian.Result) {
	if len(results) == 0 {
		return
	}
	pk.rows += len(results)
	outs := make([]float64, len(results))
	for i, r := range results {
		outs[i] = r.OutputPower
	}
	i := floats.MaxIdx(outs)
	if !pk.seen || results[i].OutputPower > pk.result.OutputPower {
		pk.result = results[i]
		pk.seen = true
	}
}
