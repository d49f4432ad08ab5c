package mapping

import (
	"fmt"
	"sort"

	"github.com/mtree22/precice/diagnostics"
	"github.com/mtree22/precice/mesh"
	"github.com/mtree22/precice/project"
	"github.com/mtree22/precice/spatialindex"
	"github.com/mtree22/precice/stencil"
	"github.com/mtree22/precice/transfer"
	"gonum.org/v1/gonum/spatial/r3"
)

// defaultCandidateCount is the k in "k-nearest candidates" the cascade
// re-ranks with exact primitive distance before accepting the first
// interior one. Not user-tunable through the constructor's required
// arguments; the WithCandidateCount option overrides it.
const defaultCandidateCount = 4

// Option configures a NearestProjection at construction time.
type Option func(*NearestProjection)

// WithSink supplies a diagnostic sink for WARN-level cascade fallbacks.
// The default is diagnostics.NopSink.
func WithSink(s diagnostics.Sink) Option {
	return func(n *NearestProjection) { n.sink = s }
}

// WithEvents supplies an event sink timing ComputeMapping, Map and
// TagMeshFirstRound. The default is diagnostics.NopEvents.
func WithEvents(e diagnostics.EventSink) Option {
	return func(n *NearestProjection) { n.events = e }
}

// WithStore supplies a pre-existing spatial index Store, letting several
// mapping instances share cached trees over meshes they both read. The
// default is a private Store owned by this instance.
func WithStore(store *spatialindex.Store) Option {
	return func(n *NearestProjection) { n.store = store }
}

// WithCandidateCount overrides the number of k-nearest candidates the
// cascade re-ranks by exact distance before accepting the first interior
// one. The default is 4.
func WithCandidateCount(k int) Option {
	return func(n *NearestProjection) { n.candidateK = k }
}

// NearestProjection is the mapping variant this core implements: for
// each origin vertex, project onto the nearest triangle, falling back to
// the nearest edge, falling back to the nearest vertex.
type NearestProjection struct {
	constraint Constraint
	dim        int
	candidateK int
	sink       diagnostics.Sink
	events     diagnostics.EventSink
	store      *spatialindex.Store

	input  *mesh.Mesh
	output *mesh.Mesh

	state State
	table *stencil.Table
}

var _ Mapping = (*NearestProjection)(nil)

// New constructs a NearestProjection for the given constraint and mesh
// dimension (2 or 3).
func New(constraint Constraint, dim int, opts ...Option) *NearestProjection {
	if dim != 2 && dim != 3 {
		panic("mapping: dimension must be 2 or 3")
	}
	n := &NearestProjection{
		constraint: constraint,
		dim:        dim,
		candidateK: defaultCandidateCount,
		sink:       diagnostics.NopSink{},
		events:     diagnostics.NopEvents{},
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.store == nil {
		n.store = spatialindex.NewStore()
	}
	return n
}

// SetMeshes assigns the input and output meshes this instance reads.
// Both must be set, and must match the mapping's dimension, before
// ComputeMapping.
func (n *NearestProjection) SetMeshes(input, output *mesh.Mesh) {
	n.input = input
	n.output = output
}

// InputRequirement reports what the input mesh must carry.
func (n *NearestProjection) InputRequirement() Requirement {
	if n.constraint == Consistent {
		return RequirementFull
	}
	return RequirementVertex
}

// OutputRequirement reports what the output mesh must carry.
func (n *NearestProjection) OutputRequirement() Requirement {
	if n.constraint == Consistent {
		return RequirementVertex
	}
	return RequirementFull
}

// HasComputedMapping reports whether the instance currently holds a
// populated StencilTable.
func (n *NearestProjection) HasComputedMapping() bool { return n.state == StateComputed }

// Clear discards any computed stencils, returning the instance to the
// Empty state.
func (n *NearestProjection) Clear() {
	n.table = nil
	n.state = StateEmpty
}

func (n *NearestProjection) origins() *mesh.Mesh {
	if n.constraint == Consistent {
		return n.output
	}
	return n.input
}

func (n *NearestProjection) search() *mesh.Mesh {
	if n.constraint == Consistent {
		return n.input
	}
	return n.output
}

// ComputeMapping populates the StencilTable, one stencil per origin
// vertex. Panics if the meshes are missing or dimension-mismatched, since
// that indicates the enclosing coupling scheme wired the mapping
// incorrectly, not a runtime condition to recover from.
func (n *NearestProjection) ComputeMapping() error {
	stop := n.events.Start("ComputeMapping")
	defer stop()

	if n.input == nil || n.output == nil {
		panic("mapping: SetMeshes must be called before ComputeMapping")
	}
	if n.input.Dim() != n.dim || n.output.Dim() != n.dim {
		panic("mapping: mesh dimension does not match the mapping's dimension")
	}

	origins := n.origins()
	searchMesh := n.search()

	if searchMesh.NumTriangles() == 0 && searchMesh.NumEdges() == 0 && searchMesh.NumVertices() == 0 {
		n.Clear()
		return withCaller(ErrEmptySearchSpace, fmt.Sprintf("search mesh %q has no primitives", searchMesh.Name()))
	}

	table := stencil.NewTable(origins.NumVertices())
	warnedTriangles := false
	warnedEdges := false

	for i := 0; i < origins.NumVertices(); i++ {
		q := origins.VertexAt(i).Coords()
		s, warnTri, warnEdge, err := n.projectOne(q, searchMesh)
		if err != nil {
			n.Clear()
			return err
		}
		if warnTri && !warnedTriangles {
			n.sink.Warnf("mapping: search mesh %q has no triangles; falling back for 3D origin", searchMesh.Name())
			warnedTriangles = true
		}
		if warnEdge && !warnedEdges {
			n.sink.Warnf("mapping: search mesh %q has no edges; falling back for 2D origin", searchMesh.Name())
			warnedEdges = true
		}
		if verr := s.Validate(); verr != nil {
			panic(fmt.Sprintf("mapping: cascade produced an invalid stencil for origin vertex %d: %v", i, verr))
		}
		table.Set(i, s)
	}

	n.table = table
	n.state = StateComputed
	return nil
}

// projectOne runs the triangle -> edge -> vertex cascade for a single
// origin point, returning the accepted stencil and whether a
// missing-triangle or missing-edge condition was observed along the way.
func (n *NearestProjection) projectOne(q r3.Vec, search *mesh.Mesh) (s stencil.Stencil, warnTri, warnEdge bool, err error) {
	if n.dim == 3 {
		if search.NumTriangles() > 0 {
			if s, ok := n.tryTriangles(q, search); ok {
				return s, false, false, nil
			}
		} else {
			warnTri = true
		}
	}

	if search.NumEdges() > 0 {
		if s, ok := n.tryEdges(q, search); ok {
			return s, warnTri, false, nil
		}
	} else if n.dim == 2 {
		warnEdge = true
	}

	if search.NumVertices() > 0 {
		ids := n.store.Nearest(search, spatialindex.Vertices, q, 1)
		if len(ids) == 0 {
			return nil, warnTri, warnEdge, withCaller(ErrEmptySearchSpace, fmt.Sprintf("search mesh %q vertex index returned no candidate", search.Name()))
		}
		return stencil.Stencil{{Mesh: search, Vertex: ids[0], Weight: project.OntoVertex()}}, warnTri, warnEdge, nil
	}

	return nil, warnTri, warnEdge, withCaller(ErrEmptySearchSpace, fmt.Sprintf("search mesh %q has no vertices left to fall back to", search.Name()))
}

type rankedCandidate struct {
	id   int
	dist float64
}

func sortCandidates(c []rankedCandidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].dist != c[j].dist {
			return c[i].dist < c[j].dist
		}
		return c[i].id < c[j].id
	})
}

func (n *NearestProjection) tryTriangles(q r3.Vec, search *mesh.Mesh) (stencil.Stencil, bool) {
	ids := n.store.Nearest(search, spatialindex.Triangles, q, n.candidateK)
	cands := make([]rankedCandidate, 0, len(ids))
	for _, id := range ids {
		a, b, c := search.TriangleCoords(search.TriangleAt(id))
		dist, ok := project.PlaneDistance(q, a, b, c)
		if !ok {
			continue
		}
		cands = append(cands, rankedCandidate{id: id, dist: dist})
	}
	sortCandidates(cands)

	for _, cand := range cands {
		tri := search.TriangleAt(cand.id)
		v0, v1, v2 := tri.Vertices()
		a, b, c := search.TriangleCoords(tri)
		proj, ok := project.OntoTriangle(q, a, b, c)
		if !ok || !proj.Interior {
			continue
		}
		return stencil.Stencil{
			{Mesh: search, Vertex: v0, Weight: proj.W0},
			{Mesh: search, Vertex: v1, Weight: proj.W1},
			{Mesh: search, Vertex: v2, Weight: proj.W2},
		}, true
	}
	return nil, false
}

func (n *NearestProjection) tryEdges(q r3.Vec, search *mesh.Mesh) (stencil.Stencil, bool) {
	ids := n.store.Nearest(search, spatialindex.Edges, q, n.candidateK)
	cands := make([]rankedCandidate, 0, len(ids))
	for _, id := range ids {
		a, b := search.EdgeCoords(search.EdgeAt(id))
		cands = append(cands, rankedCandidate{id: id, dist: project.SegmentDistance(q, a, b)})
	}
	sortCandidates(cands)

	for _, cand := range cands {
		e := search.EdgeAt(cand.id)
		v0, v1 := e.Vertices()
		a, b := search.EdgeCoords(e)
		proj, ok := project.OntoEdge(q, a, b)
		if !ok || !proj.Interior {
			continue
		}
		return stencil.Stencil{
			{Mesh: search, Vertex: v0, Weight: proj.W0},
			{Mesh: search, Vertex: v1, Weight: proj.W1},
		}, true
	}
	return nil, false
}

// Map applies the computed StencilTable to transfer field values from
// inField to outField, in the direction fixed by the mapping's
// constraint. outField must already be zeroed by the caller.
func (n *NearestProjection) Map(inField []float64, inComponents int, outField []float64, outComponents int) error {
	stop := n.events.Start("Map")
	defer stop()

	if inComponents != outComponents {
		return ErrDimensionMismatch
	}
	if n.state != StateComputed {
		return ErrStaleStencils
	}
	if n.constraint == Consistent {
		return transfer.Consistent(n.table, inComponents, inField, outField)
	}
	return transfer.Conservative(n.table, inComponents, inField, outField)
}

// TagMeshFirstRound computes a speculative mapping, tags every
// search-mesh vertex referenced by a nonzero stencil weight, then clears
// the StencilTable: the mapping this pass computes is thrown away, only
// the tags survive.
func (n *NearestProjection) TagMeshFirstRound() error {
	stop := n.events.Start("TagMeshFirstRound")
	defer stop()

	if err := n.ComputeMapping(); err != nil {
		return err
	}
	target := n.search()

	remaining := 0
	for i := 0; i < target.NumVertices(); i++ {
		if !target.VertexAt(i).Tagged() {
			remaining++
		}
	}

	newlyTagged := make(map[int]bool)
scan:
	for _, s := range n.table.All() {
		for _, e := range s {
			if e.Weight == 0 || e.Mesh != target {
				continue
			}
			if newlyTagged[e.Vertex] || target.VertexAt(e.Vertex).Tagged() {
				continue
			}
			newlyTagged[e.Vertex] = true
			remaining--
		}
		if remaining <= 0 {
			break scan
		}
	}

	for id := range newlyTagged {
		target.TagVertex(id)
	}

	n.Clear()
	return nil
}

// TagMeshSecondRound is a no-op for the nearest-projection mapping.
func (n *NearestProjection) TagMeshSecondRound() error { return nil }
