package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ja7ad/satin/pkg/config"
	"github.com/ja7ad/satin/pkg/laser"
	"github.com/ja7ad/satin/pkg/satin"
	"github.com/ja7ad/satin/pkg/scheduler"
	"github.com/ja7ad/satin/pkg/util"
)

type opts struct {
	configPath string
	concurrent bool
	dataDir    string
	outDir     string
	workers    int
	chart      bool
	plot       bool
	logLevel   string
}

func main() {
	setLogger(slog.LevelInfo)

	var o opts
	if err := execute(newRootCmd(&o), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(o *opts) *cobra.Command {
	root := &cobra.Command{
		Use:   "satin",
		Short: "CO2 laser Gaussian-beam saturation calculator",
		Long: `satin predicts the output power of CO2 lasers for a sweep of input
powers and trial saturation intensities (10000..25000 W/cm²).

Laser configurations are read from laser.dat and input powers from pin.dat in
the data directory. One report is written per laser, named after the laser's
output file. Lasers are processed one after another unless --concurrent is
given (the single-dash form -concurrent is accepted too).

Examples:
  satin --data-dir data
  satin --concurrent --out-dir reports --chart`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *o)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	root.Flags().StringVar(&o.configPath, "config", "", "YAML configuration file")
	root.Flags().BoolVar(&o.concurrent, "concurrent", false, "process lasers concurrently (default sequential)")
	root.Flags().StringVarP(&o.dataDir, "data-dir", "d", "data", "directory holding laser.dat and pin.dat")
	root.Flags().StringVarP(&o.outDir, "out-dir", "o", ".", "directory for report files")
	root.Flags().IntVarP(&o.workers, "workers", "w", 0, "max concurrent lasers (0 = unbounded)")
	root.Flags().BoolVar(&o.chart, "chart", false, "also write an HTML chart per laser")
	root.Flags().BoolVar(&o.plot, "plot", false, "also write a PNG plot per laser")
	root.Flags().StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return root
}

// execute runs root with args and always logs the elapsed wall-clock time,
// whether or not the run succeeded.
func execute(root *cobra.Command, args []string) error {
	start := time.Now()
	root.SetArgs(normalizeArgs(args))
	err := root.Execute()
	if err != nil {
		slog.Error("Failed to complete", "err", err)
	}
	slog.Info(fmt.Sprintf("The time was %s seconds", util.Seconds(time.Since(start))))
	return err
}

// normalizeArgs maps the single-dash -concurrent spelling to --concurrent;
// pflag would otherwise read it as a cluster of shorthands.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-concurrent" {
			a = "--concurrent"
		}
		out[i] = a
	}
	return out
}

// resolveConfig layers explicitly set flags over the config file (if any)
// over the defaults.
func resolveConfig(cmd *cobra.Command, o opts) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	fl := cmd.Flags()
	if fl.Changed("concurrent") {
		cfg.Mode = scheduler.Sequential.String()
		if o.concurrent {
			cfg.Mode = scheduler.Concurrent.String()
		}
	}
	if fl.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if fl.Changed("out-dir") {
		cfg.OutputDir = o.outDir
	}
	if fl.Changed("workers") {
		cfg.Workers = o.workers
	}
	if fl.Changed("chart") {
		cfg.Chart = o.chart
	}
	if fl.Changed("plot") {
		cfg.Plot = o.plot
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	setLogger(level)

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	return satin.Run(satin.Options{
		Source: laser.Source{
			Dir:       cfg.DataDir,
			LaserFile: cfg.LaserFile,
			PowerFile: cfg.PowerFile,
		},
		OutDir:  cfg.OutputDir,
		Policy:  policy,
		Workers: cfg.Workers,
		Chart:   cfg.Chart,
		Plot:    cfg.Plot,
		Log:     slog.Default(),
	})
}

// logOutput receives all log records.
var logOutput io.Writer = os.Stderr

func setLogger(level slog.Level) {
	noColor := true
	if f, ok := logOutput.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(logOutput, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor,
		}),
	))
}
