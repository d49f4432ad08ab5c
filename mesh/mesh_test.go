package mesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestAddPrimitivesBumpsVersion(t *testing.T) {
	m := New("M1", 2)
	if m.Version() != 0 {
		t.Fatalf("new mesh version = %d, want 0", m.Version())
	}
	a := m.AddVertex(r3.Vec{X: 0, Y: 0})
	b := m.AddVertex(r3.Vec{X: 1, Y: 0})
	if m.Version() != 2 {
		t.Fatalf("version after 2 AddVertex = %d, want 2", m.Version())
	}
	m.AddEdge(a, b)
	if m.Version() != 3 {
		t.Fatalf("version after AddEdge = %d, want 3", m.Version())
	}
	if got := m.NumVertices(); got != 2 {
		t.Fatalf("NumVertices() = %d, want 2", got)
	}
	if got := m.NumEdges(); got != 1 {
		t.Fatalf("NumEdges() = %d, want 1", got)
	}
}

func TestTagVertexDoesNotBumpVersion(t *testing.T) {
	m := New("M1", 2)
	m.AddVertex(r3.Vec{})
	before := m.Version()
	m.TagVertex(0)
	if m.Version() != before {
		t.Fatalf("TagVertex bumped version: before=%d after=%d", before, m.Version())
	}
	if !m.VertexAt(0).Tagged() {
		t.Fatal("vertex 0 should be tagged")
	}
}

func TestTagVertexNeverClears(t *testing.T) {
	m := New("M1", 2)
	m.AddVertex(r3.Vec{})
	m.TagVertex(0)
	m.TagVertex(0)
	if !m.VertexAt(0).Tagged() {
		t.Fatal("vertex 0 should remain tagged")
	}
}

func TestAddPrimitiveOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range vertex reference")
		}
	}()
	m := New("M1", 2)
	m.AddEdge(0, 1)
}

func TestVerticesReturnsCopy(t *testing.T) {
	m := New("M1", 2)
	m.AddVertex(r3.Vec{X: 1})
	vs := m.Vertices()
	vs[0] = Vertex{id: 99}
	if m.VertexAt(0).ID() != 0 {
		t.Fatal("mutating the slice returned by Vertices should not affect the mesh")
	}
}

func TestTriangleCoords(t *testing.T) {
	m := New("M1", 3)
	a := m.AddVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	b := m.AddVertex(r3.Vec{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(r3.Vec{X: 0, Y: 1, Z: 0})
	tri := m.TriangleAt(m.AddTriangle(a, b, c))
	va, vb, vc := m.TriangleCoords(tri)
	if va != (r3.Vec{}) || vb != (r3.Vec{X: 1}) || vc != (r3.Vec{Y: 1}) {
		t.Fatalf("unexpected triangle coords: %v %v %v", va, vb, vc)
	}
}
