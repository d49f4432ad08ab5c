package stencil

import (
	"errors"
	"testing"

	"github.com/mtree22/precice/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func newSearchMesh() *mesh.Mesh {
	m := mesh.New("search", 3)
	m.AddVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	m.AddVertex(r3.Vec{X: 1, Y: 0, Z: 0})
	return m
}

func TestValidateAcceptsPartitionOfUnity(t *testing.T) {
	m := newSearchMesh()
	s := Stencil{
		{Mesh: m, Vertex: 0, Weight: 0.5},
		{Mesh: m, Vertex: 1, Weight: 0.5},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	if err := (Stencil{}).Validate(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Validate() = %v, want ErrEmpty", err)
	}
}

func TestValidateRejectsTooManyElements(t *testing.T) {
	m := newSearchMesh()
	s := Stencil{
		{Mesh: m, Vertex: 0, Weight: 0.25},
		{Mesh: m, Vertex: 0, Weight: 0.25},
		{Mesh: m, Vertex: 0, Weight: 0.25},
		{Mesh: m, Vertex: 0, Weight: 0.25},
	}
	if err := s.Validate(); !errors.Is(err, ErrTooManyElements) {
		t.Fatalf("Validate() = %v, want ErrTooManyElements", err)
	}
}

func TestValidateRejectsBadSum(t *testing.T) {
	m := newSearchMesh()
	s := Stencil{{Mesh: m, Vertex: 0, Weight: 0.4}}
	if err := s.Validate(); !errors.Is(err, ErrNotPartitionOfUnity) {
		t.Fatalf("Validate() = %v, want ErrNotPartitionOfUnity", err)
	}
}

func TestInterior(t *testing.T) {
	m := newSearchMesh()
	s := Stencil{
		{Mesh: m, Vertex: 0, Weight: -1e-15},
		{Mesh: m, Vertex: 1, Weight: 1 + 1e-15},
	}
	if !s.Interior(1e-12) {
		t.Fatal("stencil with a tiny negative weight should still be interior within tolerance")
	}
	s[0].Weight = -0.5
	if s.Interior(1e-12) {
		t.Fatal("stencil with a genuinely negative weight should not be interior")
	}
}

func TestTableSetGetClear(t *testing.T) {
	m := newSearchMesh()
	table := NewTable(2)
	table.Set(0, Stencil{{Mesh: m, Vertex: 0, Weight: 1}})
	if got := table.Get(0); len(got) != 1 {
		t.Fatalf("Get(0) = %v, want 1 element", got)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	table.Clear()
	if table.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", table.Len())
	}
}
