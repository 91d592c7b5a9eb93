package types

import (
	"fmt"
	"strings"
)

// Isotope identifies the CO2 gas-composition variant used in the discharge.
type Isotope int

const (
	UnknownIsotope Isotope = iota
	MD
	PI
)

// String returns the upper-case isotope code (e.g. "MD").
func (i Isotope) String() string {
	switch i {
	case MD:
		return "MD"
	case PI:
		return "PI"
	default:
		return "unknown"
	}
}

// Code returns the lower-case two-letter code used as the output file prefix.
func (i Isotope) Code() string { return strings.ToLower(i.String()) }

// ParseIsotope maps a two-letter code to an Isotope, ignoring case.
func ParseIsotope(s string) (Isotope, error) {
	switch strings.ToLower(s) {
	case "md":
		return MD, nil
	case "pi":
		return PI, nil
	default:
		return UnknownIsotope, fmt.Errorf("unknown isotope code %q", s)
	}
}
