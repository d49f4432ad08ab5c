// Package transfer applies a computed stencil.Table to flat value arrays,
// either gathering (consistent) or scattering (conservative) weighted
// contributions between an origin side and a search side.
package transfer

import (
	"fmt"

	"github.com/mtree22/precice/stencil"
)

// Consistent gathers values from the search side into the origin side:
// for each origin vertex i with stencil entries (v, w), and each
// component k, outField[i*m+k] += w * inField[v.Vertex*m+k]. outField
// must already be zeroed by the caller; it is sized (origin count) * m.
func Consistent(table *stencil.Table, m int, inField, outField []float64) error {
	if len(outField) != table.Len()*m {
		return withCaller(ErrFieldLength, fmt.Sprintf("outField has %d values, want %d", len(outField), table.Len()*m))
	}
	for i, s := range table.All() {
		outOffset := i * m
		for _, e := range s {
			inOffset := e.Vertex * m
			if inOffset+m > len(inField) {
				return withCaller(ErrFieldLength, fmt.Sprintf("inField too short for search vertex %d", e.Vertex))
			}
			for k := 0; k < m; k++ {
				outField[outOffset+k] += e.Weight * inField[inOffset+k]
			}
		}
	}
	return nil
}

// Conservative scatters values from the origin side into the search
// side: for each origin vertex i with stencil entries (v, w), and each
// component k, outField[v.Vertex*m+k] += w * inField[i*m+k]. outField
// must already be zeroed by the caller; inField is sized
// (origin count) * m.
func Conservative(table *stencil.Table, m int, inField, outField []float64) error {
	if len(inField) != table.Len()*m {
		return withCaller(ErrFieldLength, fmt.Sprintf("inField has %d values, want %d", len(inField), table.Len()*m))
	}
	for i, s := range table.All() {
		inOffset := i * m
		for _, e := range s {
			outOffset := e.Vertex * m
			if outOffset+m > len(outField) {
				return withCaller(ErrFieldLength, fmt.Sprintf("outField too short for search vertex %d", e.Vertex))
			}
			for k := 0; k < m; k++ {
				outField[outOffset+k] += e.Weight * inField[inOffset+k]
			}
		}
	}
	return nil
}
