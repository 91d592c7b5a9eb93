package laser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ja7ad/satin/pkg/types"
)

// Laser is one laser configuration. Values are immutable once parsed.
type Laser struct {
	OutputFile        string
	Isotope           types.Isotope
	DischargePressure types.Pressure
	SmallSignalGain   int
}

// String identifies the laser in logs and errors.
func (l Laser) String() string { return l.OutputFile }

// ParseLine parses one descriptor line:
//
//	<isotope><2 lowercase letters>.out  <NN.N>  <gain>  <isotope, any case>
//
// Fields are separated by any run of white space.
func ParseLine(line string) (Laser, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Laser{}, fmt.Errorf("%w: want 4 fields, got %d", ErrNoMatch, len(fields))
	}

	iso, err := parseFileName(fields[0])
	if err != nil {
		return Laser{}, err
	}

	pressure, err := parsePressure(fields[1])
	if err != nil {
		return Laser{}, err
	}

	gain, err := parseGain(fields[2])
	if err != nil {
		return Laser{}, err
	}

	if !strings.EqualFold(fields[3], iso.Code()) {
		return Laser{}, fmt.Errorf("%w: file %q, code %q", ErrIsotopeMismatch, fields[0], fields[3])
	}

	return Laser{
		OutputFile:        fields[0],
		Isotope:           iso,
		DischargePressure: pressure,
		SmallSignalGain:   gain,
	}, nil
}

// parseFileName checks "<md|pi><a-z><a-z>.out" and returns the leading isotope.
func parseFileName(name string) (types.Isotope, error) {
	stem, ok := strings.CutSuffix(name, ".out")
	if !ok || len(stem) != 4 {
		return types.UnknownIsotope, fmt.Errorf("%w: %q", ErrBadFileName, name)
	}
	for i := 0; i < len(stem); i++ {
		if stem[i] < 'a' || stem[i] > 'z' {
			return types.UnknownIsotope, fmt.Errorf("%w: %q", ErrBadFileName, name)
		}
	}
	iso, err := types.ParseIsotope(stem[:2])
	if err != nil {
		return types.UnknownIsotope, fmt.Errorf("%w: %q: %v", ErrBadFileName, name, err)
	}
	return iso, nil
}

// parsePressure accepts exactly two integer digits and one fraction digit.
func parsePressure(s string) (types.Pressure, error) {
	if len(s) != 4 || s[2] != '.' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, fmt.Errorf("%w: %q", ErrBadPressure, s)
	}
	p, err := types.ParsePressure(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadPressure, err)
	}
	return p, nil
}

func parseGain(s string) (int, error) {
	if !isDigits(s) {
		return 0, fmt.Errorf("%w: %q", ErrBadGain, s)
	}
	g, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadGain, err)
	}
	return g, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
