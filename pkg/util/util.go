package util

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FmtFloat renders v with the fewest digits that round-trip to the same
// float64, in plain decimal notation. NaN and infinities keep Go's spelling.
func FmtFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Seconds formats d as seconds with three decimals, rounding half up.
func Seconds(d time.Duration) string {
	ms := (d + time.Millisecond/2) / time.Millisecond
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}

// Timestamp is the layout used for report start/end dates.
const Timestamp = "2006-01-02T15:04:05.000"
