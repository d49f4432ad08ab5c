// Package spatialindex builds and caches bulk-loaded k-d trees over a
// mesh's vertices, edges and triangles, and answers approximate k-nearest
// queries the mapping engine re-ranks with exact primitive distances.
package spatialindex

import (
	"math"
	"sort"
	"sync"

	"github.com/mtree22/precice/mesh"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind selects which primitive collection to query.
type Kind int

const (
	Vertices Kind = iota
	Edges
	Triangles
)

type entry struct {
	version   uint64
	vertices  *kdtree.Tree
	edges     *kdtree.Tree
	triangles *kdtree.Tree
}

// Store caches per-mesh spatial indices. It is an explicit value with
// NewStore/Close lifecycle, not a package-level singleton, so that
// mapping instances can own independent caches (or share one deliberately
// by passing the same *Store to more than one mapping engine).
type Store struct {
	mu      sync.Mutex
	entries map[*mesh.Mesh]*entry
}

// NewStore creates an empty index cache.
func NewStore() *Store {
	return &Store{entries: make(map[*mesh.Mesh]*entry)}
}

// Close discards all cached indices. The Store remains usable afterward;
// the next query simply rebuilds.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[*mesh.Mesh]*entry)
}

// Nearest returns up to k primitive positions of the requested kind whose
// index key (coordinates, midpoint or centroid) is closest to point, in
// unspecified order. It returns an empty slice, not an error, if the mesh
// has no primitives of that kind.
func (s *Store) Nearest(m *mesh.Mesh, kind Kind, point r3.Vec, k int) []int {
	e := s.entryFor(m)
	var tree *kdtree.Tree
	switch kind {
	case Vertices:
		tree = e.vertices
	case Edges:
		tree = e.edges
	case Triangles:
		tree = e.triangles
	}
	if tree == nil || k <= 0 {
		return nil
	}
	keeper := kdtree.NewNKeeper(k)
	tree.NearestSet(keeper, queryComparable(kind, point))
	results := sortedResults(keeper)
	ids := make([]int, len(results))
	for i, c := range results {
		ids[i] = idOf(kind, c.Comparable)
	}
	return ids
}

// sortedResults reads the candidates an NKeeper collected off its heap in
// ascending distance order. Slots left over when fewer than k primitives
// exist in the tree carry an infinite placeholder distance and a nil
// Comparable; both are dropped.
func sortedResults(keeper *kdtree.NKeeper) []kdtree.ComparableDist {
	out := make([]kdtree.ComparableDist, 0, len(keeper.Heap))
	for _, c := range keeper.Heap {
		if c.Comparable != nil && !math.IsInf(c.Dist, 1) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dist < out[j].Dist })
	return out
}

func queryComparable(kind Kind, point r3.Vec) kdtree.Comparable {
	switch kind {
	case Vertices:
		return vertexPoint{id: -1, coords: point}
	case Edges:
		return edgePoint{id: -1, mid: point}
	default:
		return triPoint{id: -1, centroid: point}
	}
}

func idOf(kind Kind, c kdtree.Comparable) int {
	switch kind {
	case Vertices:
		return c.(vertexPoint).id
	case Edges:
		return c.(edgePoint).id
	default:
		return c.(triPoint).id
	}
}

func (s *Store) entryFor(m *mesh.Mesh) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[m]
	if ok && e.version == m.Version() {
		return e
	}
	e = build(m)
	s.entries[m] = e
	return e
}

func build(m *mesh.Mesh) *entry {
	e := &entry{version: m.Version()}

	if n := m.NumVertices(); n > 0 {
		pts := make(vertexPoints, n)
		for i := 0; i < n; i++ {
			pts[i] = vertexPoint{id: i, coords: m.VertexAt(i).Coords()}
		}
		e.vertices = kdtree.New(pts, false)
	}

	if n := m.NumEdges(); n > 0 {
		pts := make(edgePoints, n)
		for i := 0; i < n; i++ {
			edge := m.EdgeAt(i)
			a, b := m.EdgeCoords(edge)
			pts[i] = edgePoint{id: i, mid: midpoint(a, b)}
		}
		e.edges = kdtree.New(pts, false)
	}

	if n := m.NumTriangles(); n > 0 {
		pts := make(triPoints, n)
		for i := 0; i < n; i++ {
			tri := m.TriangleAt(i)
			a, b, c := m.TriangleCoords(tri)
			pts[i] = triPoint{id: i, centroid: centroid(a, b, c)}
		}
		e.triangles = kdtree.New(pts, false)
	}

	return e
}
