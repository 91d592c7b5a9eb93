package report

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/ja7ad/satin/pkg/gaussian"
	"github.com/ja7ad/satin/pkg/laser"
	"github.com/ja7ad/satin/pkg/util"
)

// Clock supplies the start and end timestamps of a report.
type Clock func() time.Time

const header = `Start date: %s

Gaussian Beam

Pressure in Main Discharge = %skPa
Small-signal Gain = %d
CO2 via %s

Pin		Pout		Sat. Int	ln(Pout/Pin	Pout-Pin
(watts)		(watts)		(watts/cm2)			(watts)
`

// Writer renders one laser's text report. Writes are buffered; the first
// write error sticks and is returned by every later call.
type Writer struct {
	w   *bufio.Writer
	now Clock
	err error
}

// NewWriter wraps w. A nil clock means time.Now.
func NewWriter(w io.Writer, now Clock) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{w: bufio.NewWriter(w), now: now}
}

// Header writes the start date and the laser's parameters.
func (w *Writer) Header(l laser.Laser) error {
	return w.printf(header,
		w.now().Format(util.Timestamp),
		l.DischargePressure,
		l.SmallSignalGain,
		l.Isotope)
}

// Rows writes one tab-separated row per result, in the given order.
func (w *Writer) Rows(results []gaussian.Result) error {
	for _, r := range results {
		if err := w.printf("%d\t\t%s\t\t%d\t\t%s\t\t%s\n",
			r.InputPower,
			util.FmtFloat(r.OutputPower),
			r.SaturationIntensity,
			util.FmtFloat(r.LogRatio),
			util.FmtFloat(r.Delta)); err != nil {
			return err
		}
	}
	return nil
}

// Footer writes the end date and flushes the buffer.
func (w *Writer) Footer() error {
	if err := w.printf("\nEnd date: %s\n", w.now().Format(util.Timestamp)); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

func (w *Writer) printf(format string, args ...any) error {
	if w.err != nil {
		return w.err
	}
	if _, err := fmt.Fprintf(w.w, format, args...); err != nil {
		w.err = err
	}
	return w.err
}
