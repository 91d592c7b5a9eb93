package laser

import "errors"

var (
	// ErrNoMatch indicates that a descriptor line does not have the
	// "<file> <pressure> <gain> <isotope>" shape.
	ErrNoMatch = errors.New("laser: descriptor does not match")

	// ErrBadFileName indicates an output file name other than <isotope><2 lowercase letters>.out.
	ErrBadFileName = errors.New("laser: bad output file name")

	// ErrIsotopeMismatch indicates that the trailing isotope code differs from
	// the file name's leading code.
	ErrIsotopeMismatch = errors.New("laser: isotope mismatch")

	// ErrBadPressure indicates a pressure field other than <2 digits>.<1 digit>.
	ErrBadPressure = errors.New("laser: bad discharge pressure")

	// ErrBadGain indicates a non-numeric small-signal gain.
	ErrBadGain = errors.New("laser: bad small-signal gain")

	// ErrBadPower indicates an input-power line that is not an integer.
	ErrBadPower = errors.New("laser: bad input power")

	// ErrNegativePower indicates a negative input power.
	ErrNegativePower = errors.New("laser: negative input power")
)
