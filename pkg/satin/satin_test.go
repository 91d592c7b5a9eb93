package satin

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/satin/pkg/gaussian"
	"github.com/ja7ad/satin/pkg/laser"
	"github.com/ja7ad/satin/pkg/scheduler"
	"github.com/ja7ad/satin/pkg/types"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func constClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

// fakeEngine returns a cheap, deterministic sweep and counts calls.
type fakeEngine struct{ calls atomic.Int32 }

func (f *fakeEngine) Compute(pin int, gain float64) []gaussian.Result {
	f.calls.Add(1)
	sats := gaussian.SaturationIntensities()
	out := make([]gaussian.Result, len(sats))
	for i, s := range sats {
		pout := float64(pin)*2 + gain/100 + float64(i)
		out[i] = gaussian.Result{InputPower: pin, OutputPower: pout, SaturationIntensity: s, Delta: pout - float64(pin)}
	}
	return out
}

func writeInputs(t *testing.T, powers, lasers string) string {
	t.Helper()
	dir := t.TempDir()
	if powers != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, laser.DefaultPowerFile), []byte(powers), 0o644))
	}
	if lasers != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, laser.DefaultLaserFile), []byte(lasers), 0o644))
	}
	return dir
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// dataRows returns the report lines that start with an input power.
func dataRows(text string) []string {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) > 0 && line[0] >= '0' && line[0] <= '9' {
			rows = append(rows, line)
		}
	}
	return rows
}

func TestProcessor_Process(t *testing.T) {
	out := t.TempDir()
	eng := &fakeEngine{}
	p := &Processor{Engine: eng, OutDir: out, Clock: constClock, Log: quiet}
	l := laser.Laser{OutputFile: "mdaa.out", Isotope: types.MD, DischargePressure: 150, SmallSignalGain: 275}

	require.NoError(t, p.Process(l, []int{20, 10, 30}))
	assert.Equal(t, int32(3), eng.calls.Load())

	data, err := os.ReadFile(filepath.Join(out, "mdaa.out"))
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "Start date: 2024-01-02T03:04:05.000\n"))
	assert.Contains(t, text, "Pressure in Main Discharge = 15.0kPa\n")
	assert.Contains(t, text, "CO2 via MD\n")
	assert.True(t, strings.HasSuffix(text, "\nEnd date: 2024-01-02T03:04:05.000\n"))

	rows := dataRows(text)
	require.Len(t, rows, 3*16)
	// Outer order follows the input list, inner order the sweep.
	assert.True(t, strings.HasPrefix(rows[0], "20\t\t"))
	assert.Contains(t, rows[0], "\t\t10000\t\t")
	assert.Contains(t, rows[15], "\t\t25000\t\t")
	assert.True(t, strings.HasPrefix(rows[16], "10\t\t"))
	assert.True(t, strings.HasPrefix(rows[47], "30\t\t"))
}

func TestProcessor_LogsLaserParameters(t *testing.T) {
	var buf strings.Builder
	log := slog.New(slog.NewTextHandler(&buf, nil))
	p := &Processor{Engine: &fakeEngine{}, OutDir: t.TempDir(), Clock: constClock, Log: log}
	l := laser.Laser{OutputFile: "piqr.out", Isotope: types.PI, DischargePressure: 175, SmallSignalGain: 300}

	require.NoError(t, p.Process(l, []int{10}))
	out := buf.String()
	assert.Contains(t, out, "laser=piqr.out")
	assert.Contains(t, out, "pressure_kpa=17.5")
	assert.Contains(t, out, "isotope=PI")
	assert.Contains(t, out, "peak_pin=10")
}

func TestProcessor_Truncates(t *testing.T) {
	out := t.TempDir()
	path := filepath.Join(out, "piaa.out")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 10000)), 0o644))

	p := &Processor{Engine: &fakeEngine{}, OutDir: out, Clock: constClock, Log: quiet}
	require.NoError(t, p.Process(laser.Laser{OutputFile: "piaa.out", Isotope: types.PI, DischargePressure: 100, SmallSignalGain: 1}, []int{1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestProcessor_CreateFails(t *testing.T) {
	p := &Processor{Engine: &fakeEngine{}, OutDir: filepath.Join(t.TempDir(), "missing"), Log: quiet}
	err := p.Process(laser.Laser{OutputFile: "mdaa.out"}, []int{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestProcessor_ChartAndPlot(t *testing.T) {
	out := t.TempDir()
	p := &Processor{Engine: &fakeEngine{}, OutDir: out, Clock: constClock, Chart: true, Plot: true, Log: quiet}
	require.NoError(t, p.Process(laser.Laser{OutputFile: "mdcd.out", Isotope: types.MD, DischargePressure: 150, SmallSignalGain: 275}, []int{5, 10}))

	assert.ElementsMatch(t, []string{"mdcd.out", "mdcd.html", "mdcd.png"}, listFiles(t, out))
}

func TestPeak(t *testing.T) {
	var pk peak
	pk.observe(nil)
	assert.False(t, pk.seen)

	pk.observe([]gaussian.Result{{InputPower: 1, OutputPower: 3}, {InputPower: 1, OutputPower: 7, SaturationIntensity: 11000}})
	pk.observe([]gaussian.Result{{InputPower: 2, OutputPower: 5}})
	assert.Equal(t, 3, pk.rows)
	assert.Equal(t, 7.0, pk.result.OutputPower)
	assert.Equal(t, 11000, pk.result.SaturationIntensity)
}

const twoLasers = "mdaa.out 15.0 275 MD\npiab.out 18.5 400 pi\nbad line\n"

func TestRun_ModesProduceIdenticalReports(t *testing.T) {
	data := writeInputs(t, "5\n20\n", twoLasers)

	outs := map[scheduler.Policy]string{}
	for _, pol := range []scheduler.Policy{scheduler.Sequential, scheduler.Concurrent} {
		out := t.TempDir()
		err := Run(Options{
			Source: laser.Source{Dir: data},
			OutDir: out,
			Policy: pol,
			Clock:  constClock,
			Log:    quiet,
		})
		require.NoError(t, err, pol.String())
		outs[pol] = out
	}

	for _, name := range []string{"mdaa.out", "piab.out"} {
		seq, err := os.ReadFile(filepath.Join(outs[scheduler.Sequential], name))
		require.NoError(t, err)
		con, err := os.ReadFile(filepath.Join(outs[scheduler.Concurrent], name))
		require.NoError(t, err)
		assert.Equal(t, string(seq), string(con), name)
		assert.Len(t, dataRows(string(seq)), 2*16, name)
	}
	assert.ElementsMatch(t, []string{"mdaa.out", "piab.out"}, listFiles(t, outs[scheduler.Concurrent]))
}

func TestRun_MissingInput(t *testing.T) {
	cases := map[string]string{
		"no_powers": writeInputs(t, "", twoLasers),
		"no_lasers": writeInputs(t, "5\n", ""),
	}
	for name, data := range cases {
		data := data
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "reports")
			eng := &fakeEngine{}
			err := Run(Options{Source: laser.Source{Dir: data}, OutDir: out, Engine: eng, Log: quiet})
			require.Error(t, err)
			assert.ErrorIs(t, err, fs.ErrNotExist)
			assert.Equal(t, int32(0), eng.calls.Load())
			_, statErr := os.Stat(out)
			assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no output directory or report may be created")
		})
	}
}

func TestRun_MalformedPower(t *testing.T) {
	data := writeInputs(t, "5\nfive\n", twoLasers)
	out := t.TempDir()
	err := Run(Options{Source: laser.Source{Dir: data}, OutDir: out, Engine: &fakeEngine{}, Log: quiet})
	require.Error(t, err)
	assert.ErrorIs(t, err, laser.ErrBadPower)
	assert.Empty(t, listFiles(t, out))
}

func TestRun_WriteFailure(t *testing.T) {
	lasers := "mdaa.out 15.0 275 MD\nmdab.out 15.0 275 MD\nmdac.out 15.0 275 MD\n"
	data := writeInputs(t, "5\n", lasers)

	for _, pol := range []scheduler.Policy{scheduler.Sequential, scheduler.Concurrent} {
		pol := pol
		t.Run(pol.String(), func(t *testing.T) {
			out := t.TempDir()
			// A directory where the report should go makes its creation fail.
			require.NoError(t, os.Mkdir(filepath.Join(out, "mdab.out"), 0o755))

			err := Run(Options{Source: laser.Source{Dir: data}, OutDir: out, Policy: pol, Engine: &fakeEngine{}, Clock: constClock, Log: quiet})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "mdab.out")

			_, errA := os.Stat(filepath.Join(out, "mdaa.out"))
			assert.NoError(t, errA)

			_, errC := os.Stat(filepath.Join(out, "mdac.out"))
			if pol == scheduler.Concurrent {
				assert.NoError(t, errC, "siblings still run")
			} else {
				assert.ErrorIs(t, errC, fs.ErrNotExist, "later lasers are skipped")
			}
		})
	}
}

func TestRun_WorkerLimit(t *testing.T) {
	data := writeInputs(t, "1\n2\n", "mdaa.out 15.0 1 MD\nmdab.out 15.0 2 MD\npiac.out 15.0 3 PI\n")
	out := t.TempDir()
	eng := &fakeEngine{}
	require.NoError(t, Run(Options{Source: laser.Source{Dir: data}, OutDir: out, Policy: scheduler.Concurrent, Workers: 1, Engine: eng, Log: quiet}))
	assert.Equal(t, int32(6), eng.calls.Load())
	assert.Len(t, listFiles(t, out), 3)
}
