package satin

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/ja7ad/satin/pkg/gaussian"
	"github.com/ja7ad/satin/pkg/laser"
	"github.com/ja7ad/satin/pkg/report"
	"github.com/ja7ad/satin/pkg/scheduler"
)

// Options configures a run.
type Options struct {
	Source  laser.Source
	OutDir  string
	Policy  scheduler.Policy
	Workers int
	Chart   bool
	Plot    bool

	// Engine and Clock default to gaussian.New and time.Now.
	Engine Engine
	Clock  report.Clock
	Log    *slog.Logger
}

// Run loads the input data, then processes every laser under the chosen
// policy. Input errors abort before any report file is created.
func Run(opts Options) error {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("run_id", uuid.NewString())

	src := opts.Source
	if src.Log == nil {
		src.Log = log
	}
	lasers, powers, err := src.Load()
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}
	log.Info("input loaded", "lasers", len(lasers), "powers", len(powers), "mode", opts.Policy.String())

	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	// The engine (and with it the shared axial table) exists before any
	// worker starts.
	engine := opts.Engine
	if engine == nil {
		engine = gaussian.New()
	}

	proc := &Processor{
		Engine: engine,
		OutDir: outDir,
		Clock:  opts.Clock,
		Chart:  opts.Chart,
		Plot:   opts.Plot,
		Log:    log,
	}

	units := make([]scheduler.Unit, len(lasers))
	for i, l := range lasers {
		l := l
		units[i] = scheduler.Unit{
			Name: l.String(),
			Do:   func() error { return proc.Process(l, powers) },
		}
	}

	sched := scheduler.New(opts.Policy, scheduler.WithWorkers(opts.Workers), scheduler.WithLogger(log))
	return sched.Run(units)
}
