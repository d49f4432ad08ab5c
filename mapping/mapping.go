// Package mapping orchestrates the nearest-projection cascade: for every
// vertex of one mesh it builds a sparse interpolation stencil onto the
// primitives of another, then applies that stencil to transfer field
// values in either direction.
package mapping

import "github.com/mtree22/precice/mesh"

// Constraint selects the direction of field transfer.
type Constraint int

const (
	// Consistent interpolates a field from the input mesh onto the
	// output mesh: origins are output vertices, search primitives
	// belong to the input mesh.
	Consistent Constraint = iota
	// Conservative applies the adjoint of a consistent map: origins are
	// input vertices, search primitives belong to the output mesh.
	Conservative
)

func (c Constraint) String() string {
	if c == Conservative {
		return "conservative"
	}
	return "consistent"
}

// Requirement declares what a mesh side needs to carry for a mapping to
// use it: full connectivity (edges and triangles) to serve as a search
// space, or vertex coordinates alone to serve as an origin set.
type Requirement int

const (
	RequirementFull Requirement = iota
	RequirementVertex
)

// State is the lifecycle state of a Mapping instance.
type State int

const (
	StateEmpty State = iota
	StateComputed
)

func (s State) String() string {
	if s == StateComputed {
		return "computed"
	}
	return "empty"
}

// Mapping is the capability set the enclosing coupling scheme uses
// polymorphically; NearestProjection is the one variant this core
// implements.
type Mapping interface {
	SetMeshes(input, output *mesh.Mesh)
	ComputeMapping() error
	Clear()
	HasComputedMapping() bool
	Map(inField []float64, inComponents int, outField []float64, outComponents int) error
	TagMeshFirstRound() error
	TagMeshSecondRound() error
	InputRequirement() Requirement
	OutputRequirement() Requirement
}
