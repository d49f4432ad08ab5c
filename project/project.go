// Package project implements the point-to-primitive projection kernels:
// closed-form barycentric weights for a query point against a triangle,
// an edge, or a vertex, plus the plane/segment distance helpers the
// mapping engine uses to rank spatial-index candidates before projecting.
//
// The barycentric derivation sets up the same least-squares normal
// equations (edge0/edge1/diff/a00/a01/a11/b0/b1) a closest-point-on-a-
// triangle routine would use, but stops short of Voronoi-region clamping:
// this package returns the *unclamped* signed weights of the plane
// projection, since interiority here is a caller-visible predicate rather
// than an implementation detail of a single closest-point answer.
package project

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTolerance is the base geometric tolerance used to classify a
// weight as non-negative (interior) and to detect degenerate primitives.
// The interior tests scale it by the primitive's squared edge-length
// magnitude (never by less than 1), and the triangle degeneracy test by
// the square of that magnitude; the edge and plane-distance degeneracy
// tests use it unscaled.
const DefaultTolerance = 1e-14

// Triangle is the outcome of projecting a point onto a triangle's plane.
type Triangle struct {
	W0, W1, W2 float64 // barycentric weights for corners a, b, c
	Interior   bool    // all weights >= -eps
}

// OntoTriangle computes the barycentric coordinates of the orthogonal
// projection of q onto the plane through a, b, c. ok is false if the
// triangle is degenerate (its two edge vectors are ~collinear, i.e. its
// area is ~0), in which case Triangle's zero value is returned and the
// caller should fall through to the next candidate.
func OntoTriangle(q, a, b, c r3.Vec) (tri Triangle, ok bool) {
	edge0 := r3.Sub(b, a)
	edge1 := r3.Sub(c, a)
	diff := r3.Sub(q, a)

	a00 := r3.Dot(edge0, edge0)
	a01 := r3.Dot(edge0, edge1)
	a11 := r3.Dot(edge1, edge1)
	b0 := r3.Dot(diff, edge0)
	b1 := r3.Dot(diff, edge1)

	det := a00*a11 - a01*a01
	extent := a00 + a11
	if det <= DefaultTolerance*extent*extent {
		return Triangle{}, false
	}

	s := (a11*b0 - a01*b1) / det
	t := (a00*b1 - a01*b0) / det
	w0 := 1 - s - t
	w1 := s
	w2 := t

	eps := DefaultTolerance * math.Max(extent, 1)
	interior := w0 >= -eps && w1 >= -eps && w2 >= -eps
	return Triangle{W0: w0, W1: w1, W2: w2, Interior: interior}, true
}

// Edge is the outcome of projecting a point onto an edge's line.
type Edge struct {
	W0, W1   float64 // barycentric weights for endpoints a, b
	Interior bool    // parameter t in [-eps, 1+eps]
}

// OntoEdge computes the line parameter t minimizing the distance from q to
// a + t*(b-a), and returns weights (1-t, t). ok is false if the edge is
// degenerate (length ~0).
func OntoEdge(q, a, b r3.Vec) (edge Edge, ok bool) {
	d := r3.Sub(b, a)
	len2 := r3.Dot(d, d)
	if len2 <= DefaultTolerance*DefaultTolerance {
		return Edge{}, false
	}
	t := r3.Dot(r3.Sub(q, a), d) / len2
	eps := DefaultTolerance * math.Max(len2, 1)
	interior := t >= -eps && t <= 1+eps
	return Edge{W0: 1 - t, W1: t, Interior: interior}, true
}

// OntoVertex returns the trivial unit weight of projecting a point onto a
// single vertex.
func OntoVertex() float64 { return 1 }

// PlaneDistance returns the unsigned distance from q to the plane through
// triangle corners a, b, c. Returns false if the triangle is degenerate.
func PlaneDistance(q, a, b, c r3.Vec) (dist float64, ok bool) {
	edge0 := r3.Sub(b, a)
	edge1 := r3.Sub(c, a)
	n := r3.Cross(edge0, edge1)
	norm := r3.Norm(n)
	if norm <= DefaultTolerance {
		return 0, false
	}
	return math.Abs(r3.Dot(n, r3.Sub(q, a))) / norm, true
}

// SegmentDistance returns the distance from q to the closest point on the
// closed segment [a, b] (i.e. the projection parameter is clamped to
// [0, 1] for this distance computation only; OntoEdge's interior test is
// unaffected by this clamp).
func SegmentDistance(q, a, b r3.Vec) float64 {
	d := r3.Sub(b, a)
	len2 := r3.Dot(d, d)
	if len2 <= DefaultTolerance*DefaultTolerance {
		return r3.Norm(r3.Sub(q, a))
	}
	t := r3.Dot(r3.Sub(q, a), d) / len2
	t = math.Max(0, math.Min(1, t))
	closest := r3.Add(a, r3.Scale(t, d))
	return r3.Norm(r3.Sub(q, closest))
}
