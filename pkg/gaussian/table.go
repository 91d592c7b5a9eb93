package gaussian

import "sync"

// AxialTable holds the per-slice axial correction terms. It depends only on
// the fixed beam constants and is never mutated after construction.
type AxialTable [AxialSamples]float64

// axialTable builds the table on first use; every caller shares the result.
var axialTable = sync.OnceValue(buildAxialTable)

func buildAxialTable() *AxialTable {
	var t AxialTable
	for i := 0; i < AxialSamples; i++ {
		z := float64(i-AxialSamples/2) / 25
		t[i] = 2 * z * axialStep / (rayleighSq + float64(z*z)) // no fused multiply-add
	}
	return &t
}

// SharedAxialTable returns the process-wide table, building it if needed.
func SharedAxialTable() *AxialTable { return axialTable() }
