// Package stencil holds the sparse per-vertex interpolation weights the
// mapping engine computes and the field-transfer pass later consumes.
package stencil

import (
	"fmt"
	"math"

	"github.com/mtree22/precice/mesh"
)

// PartitionTolerance is the allowed deviation of a stencil's weights from
// summing to exactly 1.
const PartitionTolerance = 1e-12

// Element is a single (search-mesh vertex, weight) pair. It holds a
// pointer to the search mesh rather than an opaque handle so that the
// aliasing this package's mapping caller relies on for tagging is a
// type-level guarantee, not something verified at runtime.
type Element struct {
	Mesh   *mesh.Mesh
	Vertex int // position of the vertex within Mesh
	Weight float64
}

// Stencil is an ordered list of 1..3 InterpolationElements expressing an
// origin vertex's value as a linear combination of search-mesh vertices.
type Stencil []Element

// Sum returns the sum of the stencil's weights.
func (s Stencil) Sum() float64 {
	var total float64
	for _, e := range s {
		total += e.Weight
	}
	return total
}

// Interior reports whether every weight in the stencil is non-negative,
// i.e. the stencil came from a projection interior to its primitive.
func (s Stencil) Interior(eps float64) bool {
	for _, e := range s {
		if e.Weight < -eps {
			return false
		}
	}
	return true
}

// Validate checks the invariants a stencil must hold regardless of how it
// was constructed: 1..3 elements, finite weights, partition of unity.
func (s Stencil) Validate() error {
	if len(s) == 0 {
		return ErrEmpty
	}
	if len(s) > 3 {
		return ErrTooManyElements
	}
	for _, e := range s {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return withCaller(ErrNonFiniteWeight, fmt.Sprintf("%v", e.Weight))
		}
	}
	if math.Abs(s.Sum()-1) > PartitionTolerance {
		return withCaller(ErrNotPartitionOfUnity, fmt.Sprintf("sum=%v", s.Sum()))
	}
	return nil
}

// Table holds one Stencil per origin vertex, indexed by the origin
// vertex's position in its mesh.
type Table struct {
	entries []Stencil
}

// NewTable allocates a table sized for n origin vertices, all initially
// empty.
func NewTable(n int) *Table {
	return &Table{entries: make([]Stencil, n)}
}

// Len returns the number of entries the table holds.
func (t *Table) Len() int { return len(t.entries) }

// Set stores the stencil for the origin vertex at position i.
func (t *Table) Set(i int, s Stencil) { t.entries[i] = s }

// Get returns the stencil stored for the origin vertex at position i.
func (t *Table) Get(i int) Stencil { return t.entries[i] }

// All returns the table's entries in origin-vertex order. The returned
// slice aliases the table's storage and must not be mutated.
func (t *Table) All() []Stencil { return t.entries }

// Clear empties the table.
func (t *Table) Clear() { t.entries = nil }
