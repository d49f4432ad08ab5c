// Package mesh holds the immutable geometric primitives that the mapping
// core reads: vertices, edges and triangles collected into a named,
// insertion-ordered Mesh. Coordinates never change after a primitive is
// added; the only mutable state is a vertex's tag bit, flipped by the
// tagging pass.
package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Vertex is a point with a stable identifier and a tag bit. Coordinates
// are fixed at construction. VertexAt and Vertices return copies, so
// Tagged reports the tag bit as it was when the copy was taken; a later
// TagVertex call updates the Mesh's own vertex, not earlier copies.
type Vertex struct {
	id     int
	coords r3.Vec
	tag    bool
}

// ID returns the vertex's identifier, stable within its mesh.
func (v Vertex) ID() int { return v.id }

// Coords returns the vertex's coordinates. For a 2D mesh, Z is always 0.
func (v Vertex) Coords() r3.Vec { return v.coords }

// Tagged reports whether the vertex has been marked as referenced by a
// stencil.
func (v Vertex) Tagged() bool { return v.tag }

// Edge is an ordered pair of vertex positions within a single mesh.
type Edge struct {
	id     int
	v0, v1 int
}

// ID returns the edge's identifier, stable within its mesh.
func (e Edge) ID() int { return e.id }

// Vertices returns the positions, within the owning mesh's vertex slice,
// of the edge's two endpoints.
func (e Edge) Vertices() (v0, v1 int) { return e.v0, e.v1 }

// Triangle is an ordered triple of vertex positions within a single mesh.
type Triangle struct {
	id         int
	v0, v1, v2 int
}

// ID returns the triangle's identifier, stable within its mesh.
func (t Triangle) ID() int { return t.id }

// Vertices returns the positions, within the owning mesh's vertex slice,
// of the triangle's three corners.
func (t Triangle) Vertices() (v0, v1, v2 int) { return t.v0, t.v1, t.v2 }

// Mesh is a named, insertion-ordered collection of vertices, edges and
// triangles. Every edge and triangle references vertices belonging to the
// same Mesh by position.
//
// Version is bumped on every geometry-mutating append (AddVertex, AddEdge,
// AddTriangle) so that a spatialindex.Store can detect a stale cache;
// TagVertex does not bump it, since tagging never changes geometry.
type Mesh struct {
	name string
	dim  int

	version   uint64
	vertices  []Vertex
	edges     []Edge
	triangles []Triangle
}

// New creates an empty mesh with the given diagnostic name and dimension
// (2 or 3).
func New(name string, dim int) *Mesh {
	if dim != 2 && dim != 3 {
		panic("mesh: dimension must be 2 or 3")
	}
	return &Mesh{name: name, dim: dim}
}

// Name returns the mesh's diagnostic name.
func (m *Mesh) Name() string { return m.name }

// Dim returns the mesh's dimension, 2 or 3.
func (m *Mesh) Dim() int { return m.dim }

// Version returns the mesh's geometry version counter.
func (m *Mesh) Version() uint64 { return m.version }

// AddVertex appends a vertex at the given coordinates and returns its
// position (and identifier) within the mesh.
func (m *Mesh) AddVertex(coords r3.Vec) int {
	id := len(m.vertices)
	m.vertices = append(m.vertices, Vertex{id: id, coords: coords})
	m.version++
	return id
}

// AddEdge appends an edge between two existing vertex positions and
// returns its position within the mesh.
func (m *Mesh) AddEdge(v0, v1 int) int {
	m.mustHaveVertex(v0)
	m.mustHaveVertex(v1)
	id := len(m.edges)
	m.edges = append(m.edges, Edge{id: id, v0: v0, v1: v1})
	m.version++
	return id
}

// AddTriangle appends a triangle over three existing vertex positions and
// returns its position within the mesh.
func (m *Mesh) AddTriangle(v0, v1, v2 int) int {
	m.mustHaveVertex(v0)
	m.mustHaveVertex(v1)
	m.mustHaveVertex(v2)
	id := len(m.triangles)
	m.triangles = append(m.triangles, Triangle{id: id, v0: v0, v1: v1, v2: v2})
	m.version++
	return id
}

func (m *Mesh) mustHaveVertex(v int) {
	if v < 0 || v >= len(m.vertices) {
		panic("mesh: vertex reference out of range")
	}
}

// Vertices returns the mesh's vertices in insertion order. The returned
// slice is a copy; use TagVertex to mutate a vertex's tag bit in place.
func (m *Mesh) Vertices() []Vertex {
	out := make([]Vertex, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Edges returns the mesh's edges in insertion order.
func (m *Mesh) Edges() []Edge {
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out
}

// Triangles returns the mesh's triangles in insertion order.
func (m *Mesh) Triangles() []Triangle {
	out := make([]Triangle, len(m.triangles))
	copy(out, m.triangles)
	return out
}

// VertexAt returns the vertex at the given position.
func (m *Mesh) VertexAt(i int) Vertex { return m.vertices[i] }

// EdgeAt returns the edge at the given position.
func (m *Mesh) EdgeAt(i int) Edge { return m.edges[i] }

// TriangleAt returns the triangle at the given position.
func (m *Mesh) TriangleAt(i int) Triangle { return m.triangles[i] }

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumEdges returns the number of edges in the mesh.
func (m *Mesh) NumEdges() int { return len(m.edges) }

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int { return len(m.triangles) }

// EdgeCoords returns the coordinates of an edge's two endpoints.
func (m *Mesh) EdgeCoords(e Edge) (a, b r3.Vec) {
	return m.vertices[e.v0].coords, m.vertices[e.v1].coords
}

// TriangleCoords returns the coordinates of a triangle's three corners.
func (m *Mesh) TriangleCoords(t Triangle) (a, b, c r3.Vec) {
	return m.vertices[t.v0].coords, m.vertices[t.v1].coords, m.vertices[t.v2].coords
}

// TagVertex sets the tag bit of the vertex at the given position. Tagging
// an already-tagged vertex is a no-op; TagVertex never clears a tag.
func (m *Mesh) TagVertex(i int) {
	m.vertices[i].tag = true
}
