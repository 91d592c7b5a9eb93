package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Pressure is a discharge pressure in tenths of a kilopascal, so that the
// single fraction digit of the source data is kept exactly.
type Pressure int

// ParsePressure parses a decimal with exactly one fraction digit ("15.0").
func ParsePressure(s string) (Pressure, error) {
	whole, frac, ok := strings.Cut(s, ".")
	if !ok || whole == "" || len(frac) != 1 {
		return 0, fmt.Errorf("pressure %q: want <digits>.<digit>", s)
	}
	w, err := strconv.ParseUint(whole, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("pressure %q: %w", s, err)
	}
	f := frac[0]
	if f < '0' || f > '9' {
		return 0, fmt.Errorf("pressure %q: bad fraction digit", s)
	}
	return Pressure(int(w)*10 + int(f-'0')), nil
}

// KPa returns the pressure in kilopascals.
func (p Pressure) KPa() float64 { return float64(p) / 10 }

// String renders the pressure with one fraction digit.
func (p Pressure) String() string {
	return fmt.Sprintf("%d.%d", int(p)/10, int(p)%10)
}
