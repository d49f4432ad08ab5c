package spatialindex

import (
	"sort"
	"testing"

	"github.com/mtree22/precice/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func squareMesh() *mesh.Mesh {
	m := mesh.New("square", 2)
	a := m.AddVertex(r3.Vec{X: 0, Y: 0})
	b := m.AddVertex(r3.Vec{X: 1, Y: 0})
	c := m.AddVertex(r3.Vec{X: 1, Y: 1})
	d := m.AddVertex(r3.Vec{X: 0, Y: 1})
	m.AddEdge(a, b)
	m.AddEdge(b, c)
	m.AddEdge(c, d)
	m.AddEdge(d, a)
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
	return m
}

func TestNearestVertices(t *testing.T) {
	m := squareMesh()
	store := NewStore()
	ids := store.Nearest(m, Vertices, r3.Vec{X: 0.1, Y: 0.1}, 1)
	if len(ids) != 1 || ids[0] != 0 {
		t.Fatalf("Nearest vertex = %v, want [0]", ids)
	}
}

func TestNearestReturnsUpToK(t *testing.T) {
	m := squareMesh()
	store := NewStore()
	ids := store.Nearest(m, Vertices, r3.Vec{X: 0.5, Y: 0.5}, 4)
	if len(ids) != 4 {
		t.Fatalf("len(ids) = %d, want 4", len(ids))
	}
	seen := map[int]bool{}
	for _, id := range ids {
		if id < 0 || id > 3 {
			t.Fatalf("unexpected vertex id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct vertices, got %v", ids)
	}
}

func TestNearestKGreaterThanAvailable(t *testing.T) {
	m := squareMesh()
	store := NewStore()
	ids := store.Nearest(m, Vertices, r3.Vec{}, 100)
	if len(ids) != 4 {
		t.Fatalf("len(ids) = %d, want 4 (all vertices)", len(ids))
	}
}

func TestNearestEmptyKindReturnsEmpty(t *testing.T) {
	m := mesh.New("no-triangles", 2)
	m.AddVertex(r3.Vec{})
	store := NewStore()
	ids := store.Nearest(m, Triangles, r3.Vec{}, 4)
	if len(ids) != 0 {
		t.Fatalf("Nearest on empty kind = %v, want empty", ids)
	}
}

func TestNearestTriangles(t *testing.T) {
	m := squareMesh()
	store := NewStore()
	ids := store.Nearest(m, Triangles, r3.Vec{X: 0.9, Y: 0.9}, 2)
	sort.Ints(ids)
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Fatalf("Nearest triangles = %v, want [0 1]", ids)
	}
}

func TestStoreInvalidatesOnMeshMutation(t *testing.T) {
	m := mesh.New("growing", 2)
	m.AddVertex(r3.Vec{X: 0, Y: 0})
	store := NewStore()
	before := store.Nearest(m, Vertices, r3.Vec{X: 10, Y: 10}, 5)
	if len(before) != 1 {
		t.Fatalf("expected 1 vertex before growth, got %v", before)
	}
	m.AddVertex(r3.Vec{X: 20, Y: 20})
	after := store.Nearest(m, Vertices, r3.Vec{X: 10, Y: 10}, 5)
	if len(after) != 2 {
		t.Fatalf("expected 2 vertices after growth, got %v", after)
	}
}

func TestCloseDropsCache(t *testing.T) {
	m := squareMesh()
	store := NewStore()
	store.Nearest(m, Vertices, r3.Vec{}, 1)
	store.Close()
	ids := store.Nearest(m, Vertices, r3.Vec{}, 1)
	if len(ids) != 1 {
		t.Fatalf("Nearest after Close = %v, want 1 result (rebuilt)", ids)
	}
}
